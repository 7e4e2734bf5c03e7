package redis

import (
	"fmt"
	"strings"

	"github.com/masego-dev/clubctl/internal/model"
)

// Key prefix for all club data
const keyPrefix = "club"

// Key generation functions for each entity type

// accountKey returns the Redis key for an Account
func accountKey(id model.UserID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, id)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, strings.ToLower(email))
}

// idNumberIndexKey returns the Redis key for the id_number -> user_id index
func idNumberIndexKey(idNumber string) string {
	return fmt.Sprintf("%s:idx:id_num:%s", keyPrefix, idNumber)
}

// accountsIndexKey returns the Redis key for the LIST of all account ids,
// in registration order
func accountsIndexKey() string {
	return fmt.Sprintf("%s:idx:accounts", keyPrefix)
}

// receiptKey returns the Redis key for a StoredReceipt
func receiptKey(id model.ReceiptID) string {
	return fmt.Sprintf("%s:receipt:%s", keyPrefix, id)
}

// receiptsIndexKey returns the Redis key for the LIST of all receipt ids,
// in upload order
func receiptsIndexKey() string {
	return fmt.Sprintf("%s:idx:receipts", keyPrefix)
}

// blobKey returns the Redis key for a Blob
func blobKey(id string) string {
	return fmt.Sprintf("%s:blob:%s", keyPrefix, id)
}
