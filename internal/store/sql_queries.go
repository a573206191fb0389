package store

const (
	userColumns = `user_id, first_name, last_name, admin, email, phone, email_digest, phone_digest, password_hash, avatar, items, history, created_at`

	createUser = `INSERT INTO users (user_id, first_name, last_name, admin, email, phone, email_digest, phone_digest, password_hash, avatar, items, history)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    RETURNING created_at;`

	getUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	findUserByDigest = `SELECT ` + userColumns + `
    FROM users
    WHERE email_digest = $1 OR phone_digest = $1;`

	listUsers = `SELECT ` + userColumns + `
    FROM users
    ORDER BY created_at;`

	updateUserName = `UPDATE users
    SET first_name = $2, last_name = $3, updated_at = NOW()
    WHERE user_id = $1;`

	updateUserEmail = `UPDATE users
    SET email = $2, email_digest = $3, updated_at = NOW()
    WHERE user_id = $1;`

	updateUserPhone = `UPDATE users
    SET phone = $2, phone_digest = $3, updated_at = NOW()
    WHERE user_id = $1;`

	updateUserPassword = `UPDATE users
    SET password_hash = $2, updated_at = NOW()
    WHERE user_id = $1;`

	updateUserSelection = `UPDATE users
    SET items = $2, updated_at = NOW()
    WHERE user_id = $1;`

	deleteUser = `DELETE FROM users WHERE user_id = $1;`
)

const (
	createCategory = `INSERT INTO categories (category_id, name)
    VALUES ($1, $2)
    RETURNING created_at;`

	getCategoryByID = `SELECT category_id, name, created_at
    FROM categories
    WHERE category_id = $1;`

	listCategories = `SELECT category_id, name, created_at
    FROM categories
    ORDER BY created_at;`

	renameCategory = `UPDATE categories
    SET name = $2
    WHERE category_id = $1;`

	deleteCategory = `DELETE FROM categories WHERE category_id = $1;`

	itemColumns = `item_id, name, image, stock, category_id, created_at`

	createItem = `INSERT INTO items (item_id, name, image, stock, category_id)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING created_at;`

	getItemByID = `SELECT ` + itemColumns + `
    FROM items
    WHERE item_id = $1;`

	getItemsByIDs = `SELECT ` + itemColumns + `
    FROM items
    WHERE item_id = ANY($1);`

	listItems = `SELECT ` + itemColumns + `
    FROM items
    ORDER BY category_id, created_at;`

	moveItem = `UPDATE items
    SET category_id = $2
    WHERE item_id = $1;`

	deleteItem = `DELETE FROM items WHERE item_id = $1;`
)

const (
	insertRedeemedClaim = `INSERT INTO redeemed_claims (jti, user_id) VALUES ($1, $2);`

	deleteOrderByUser = `DELETE FROM orders WHERE user_id = $1;`

	createOrder = `INSERT INTO orders (order_id, user_id, items)
    VALUES ($1, $2, $3)
    RETURNING created_at;`

	selectUserSelectionForUpdate = `SELECT items, history
    FROM users
    WHERE user_id = $1
    FOR UPDATE;`

	clearSelectionIntoHistory = `UPDATE users
    SET items = '[]', history = $2, updated_at = NOW()
    WHERE user_id = $1;`

	deleteOrderByID = `DELETE FROM orders WHERE order_id = $1;`

	listOrders = `SELECT order_id, user_id, items, created_at
    FROM orders
    ORDER BY created_at;`
)
