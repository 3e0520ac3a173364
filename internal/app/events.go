package app

import (
	"context"

	"github.com/jihan212/BUBT-DX/internal/common"
)

func analyticsPayload(ctx context.Context, payload map[string]string) map[string]string {
	if payload == nil {
		payload = map[string]string{}
	}
	if requestID, ok := common.RequestIDFromContext(ctx); ok && requestID != "" {
		payload["request_id"] = requestID
	}
	return payload
}
