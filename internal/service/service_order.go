package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/feiyue-app/feiyue-server/internal/config"
	"github.com/feiyue-app/feiyue-server/internal/logger"
	"github.com/feiyue-app/feiyue-server/internal/store"
	"github.com/feiyue-app/feiyue-server/internal/utils"
	"github.com/feiyue-app/feiyue-server/models"
	"github.com/skip2/go-qrcode"
)

// qrCodeSize is the pixel width and height of rendered claim QR codes.
const qrCodeSize = 256

// orderService drives the order protocol: minting claim tokens over the
// live selection, inspecting and redeeming them, and completing fulfilled
// orders. Redemption publishes the resolved order on the broadcast channel
// so connected admin scanners refresh immediately.
type orderService struct {
	orderRepository   store.OrderRepository
	userRepository    store.UserRepository
	catalogRepository store.CatalogRepository
	publisher         Publisher

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration

	logger *logger.Logger
}

func NewOrderService(storages *store.Storages, publisher Publisher, cfg config.Auth, logger *logger.Logger) OrderService {
	return &orderService{
		orderRepository:   storages.OrderRepository,
		userRepository:    storages.UserRepository,
		catalogRepository: storages.CatalogRepository,
		publisher:         publisher,
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		tokenDuration:     cfg.ClaimTokenDuration,
		logger:            logger,
	}
}

// MintClaim signs the target user's current selection into a claim token
// and renders the token as a QR code (base64-encoded PNG).
//
// The target defaults to the session's own account; only admins may mint
// for someone else. An empty selection cannot be claimed.
func (o *orderService) MintClaim(ctx context.Context, session models.Session, userID string) (models.MintedClaim, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		userID = session.UserID
	}
	if userID != session.UserID && !session.Admin {
		return models.MintedClaim{}, ErrUnauthorized
	}

	user, err := o.userRepository.GetUser(ctx, userID)
	if err != nil {
		return models.MintedClaim{}, fmt.Errorf("user lookup failed: %w", err)
	}
	if len(user.Items) == 0 {
		return models.MintedClaim{}, ErrEmptySelection
	}

	token, err := utils.GenerateOrderClaimToken(o.tokenIssuer, userID, user.Items, o.tokenDuration, o.tokenSignKey)
	if err != nil {
		return models.MintedClaim{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	png, err := qrcode.Encode(token.SignedString, qrcode.Medium, qrCodeSize)
	if err != nil {
		log.Err(err).Str("func", "*orderService.MintClaim").Msg("qr encoding failed")
		return models.MintedClaim{}, fmt.Errorf("qr encoding failed: %w", err)
	}

	return models.MintedClaim{
		Token:     token.SignedString,
		QRCode:    base64.StdEncoding.EncodeToString(png),
		ExpiresAt: token.ExpiresAt,
	}, nil
}

// InspectClaim resolves a claim token into a preview for the scanning
// admin without consuming it. The token stays redeemable.
func (o *orderService) InspectClaim(ctx context.Context, session models.Session, tokenString string) (models.ClaimPreview, error) {
	if !session.Admin {
		return models.ClaimPreview{}, ErrUnauthorized
	}

	claim, err := utils.ValidateOrderClaimToken(tokenString, o.tokenSignKey, o.tokenIssuer)
	if err != nil {
		return models.ClaimPreview{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := o.userRepository.GetUser(ctx, claim.UserID)
	if err != nil {
		return models.ClaimPreview{}, fmt.Errorf("user lookup failed: %w", err)
	}

	items, err := o.resolveItems(ctx, claim.Items)
	if err != nil {
		return models.ClaimPreview{}, err
	}

	return models.ClaimPreview{
		User:  displayOf(user),
		Items: items,
	}, nil
}

// RedeemClaim consumes a claim token: the claim's snapshot becomes the
// user's open order (replacing any prior one), the snapshot is archived
// into the user's history and the live selection is cleared, all in one
// transaction keyed on the claim's jti.
//
// A replayed token fails with store.ErrClaimAlreadyRedeemed and changes
// nothing. On success the resolved order view is published on the orders
// broadcast topic; publish failures are logged, not returned.
func (o *orderService) RedeemClaim(ctx context.Context, session models.Session, tokenString string) (models.OrderView, error) {
	log := logger.FromContext(ctx)

	if !session.Admin {
		return models.OrderView{}, ErrUnauthorized
	}

	claim, err := utils.ValidateOrderClaimToken(tokenString, o.tokenSignKey, o.tokenIssuer)
	if err != nil {
		return models.OrderView{}, ErrTokenIsExpiredOrInvalid
	}

	order, err := o.orderRepository.ReplaceOrder(ctx, claim.UserID, claim.JTI, claim.Items)
	if err != nil {
		log.Err(err).Str("func", "*orderService.RedeemClaim").Msg("claim redemption failed")
		return models.OrderView{}, fmt.Errorf("claim redemption failed: %w", err)
	}

	view, err := o.resolveOrder(ctx, order)
	if err != nil {
		return models.OrderView{}, err
	}

	if err := o.publisher.PublishJSON(view); err != nil {
		log.Err(err).Str("func", "*orderService.RedeemClaim").Msg("order broadcast failed")
	}

	return view, nil
}

// CompleteOrder removes a fulfilled order. Completing an already-completed
// (missing) order is a no-op.
func (o *orderService) CompleteOrder(ctx context.Context, session models.Session, orderID string) error {
	if !session.Admin {
		return ErrUnauthorized
	}

	if err := o.orderRepository.DeleteOrder(ctx, orderID); err != nil {
		return fmt.Errorf("order completion failed: %w", err)
	}

	return nil
}

func (o *orderService) ListOpenOrders(ctx context.Context, session models.Session) ([]models.OrderView, error) {
	if !session.Admin {
		return nil, ErrUnauthorized
	}

	orders, err := o.orderRepository.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("order listing failed: %w", err)
	}

	views := make([]models.OrderView, 0, len(orders))
	for _, order := range orders {
		view, err := o.resolveOrder(ctx, order)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}

func (o *orderService) resolveOrder(ctx context.Context, order models.Order) (models.OrderView, error) {
	user, err := o.userRepository.GetUser(ctx, order.UserID)
	if err != nil {
		return models.OrderView{}, fmt.Errorf("user lookup failed: %w", err)
	}

	items, err := o.resolveItems(ctx, order.Items)
	if err != nil {
		return models.OrderView{}, err
	}

	return models.OrderView{
		OrderID:   order.OrderID,
		User:      displayOf(user),
		Items:     items,
		CreatedAt: order.CreatedAt,
	}, nil
}

// resolveItems loads the given items with their categories populated.
// Items deleted from the catalog since the snapshot was taken are skipped.
func (o *orderService) resolveItems(ctx context.Context, itemIDs []string) ([]models.ResolvedItem, error) {
	items, err := o.catalogRepository.GetItems(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("item lookup failed: %w", err)
	}

	categories, err := o.catalogRepository.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("category listing failed: %w", err)
	}
	byID := make(map[string]models.Category, len(categories))
	for _, category := range categories {
		category.Items = nil
		byID[category.CategoryID] = category
	}

	resolved := make([]models.ResolvedItem, 0, len(items))
	for _, item := range items {
		resolved = append(resolved, models.ResolvedItem{
			Item:     item,
			Category: byID[item.CategoryID],
		})
	}

	return resolved, nil
}

func displayOf(user models.User) models.UserDisplay {
	return models.UserDisplay{
		UserID:   user.UserID,
		FullName: user.FullName(),
		Avatar:   user.Avatar,
	}
}
