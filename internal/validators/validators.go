// Package validators implements the business-rule checks applied before
// user and catalog writes: email/phone/URL shape and password strength.
//
// Email and phone validators accept either plaintext or a decryptable
// ciphertext, because values read back from storage are encrypted and
// records written before encryption was introduced may still hold
// plaintext.
package validators

import (
	"regexp"

	"github.com/asaskevich/govalidator"
	"github.com/feiyue-app/feiyue-server/internal/crypto"
)

// sgMobile matches Singapore mobile numbers, with or without the +65
// country prefix.
var sgMobile = regexp.MustCompile(`^(\+65)?[89][0-9]{7}$`)

// Email reports whether value is a well-formed email address. The check is
// applied to the value as given and, failing that, to its decrypted form.
func Email(value string, vault crypto.Vault) bool {
	if govalidator.IsEmail(value) {
		return true
	}
	if vault == nil {
		return false
	}
	plaintext, err := vault.Decrypt(value)
	return err == nil && govalidator.IsEmail(plaintext)
}

// Phone reports whether value is a well-formed mobile phone number,
// in plaintext or decryptable ciphertext form.
func Phone(value string, vault crypto.Vault) bool {
	if sgMobile.MatchString(value) {
		return true
	}
	if vault == nil {
		return false
	}
	plaintext, err := vault.Decrypt(value)
	return err == nil && sgMobile.MatchString(plaintext)
}

// URL reports whether value is a well-formed URL.
func URL(value string) bool {
	return govalidator.IsURL(value)
}
