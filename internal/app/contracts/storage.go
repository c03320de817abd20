package contracts

import "context"

type StorageService interface {
	StoreObject(ctx context.Context, objectName, contentType string, data []byte) error
}
