package usecase

import (
	"context"
	"encoding/json"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// 監査ログの書き込み。失敗しても管理操作自体は成立させる。
func writeAuditLog(
	ctx context.Context,
	audit repo.AuditLogRepository,
	idGen IDGenerator,
	clock Clock,
	actorID string,
	action model.AuditAction,
	resource model.AuditResourceType,
	resourceID string,
	before, after interface{},
) {
	log := model.AuditLog{
		ID:           idGen.NewID(),
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: resource,
		ResourceID:   resourceID,
		CreatedAt:    clock.Now(),
	}
	if before != nil {
		if b, err := json.Marshal(before); err == nil {
			log.BeforeJSON = string(b)
		}
	}
	if after != nil {
		if b, err := json.Marshal(after); err == nil {
			log.AfterJSON = string(b)
		}
	}
	_ = audit.Create(ctx, log)
}
