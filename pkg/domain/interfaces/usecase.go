package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/m-mizutani/l10nsync/pkg/domain/model"
)

type UseCase interface {
	SyncTranslations(ctx context.Context, input *model.SyncInput) (*model.SyncResult, error)
}
