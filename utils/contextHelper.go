package utils

import (
	"context"

	"github.com/rneelappa/vyaapari-nexus-sub000/appctx"
)

var (
	ContextKeyCompanyId     = appctx.ContextKeyCompanyId
	ContextKeyDivisionId    = appctx.ContextKeyDivisionId
	ContextKeyCorrelationId = appctx.ContextKeyCorrelationId
)

func GetCompanyIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyCompanyId)
}

func GetDivisionIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyDivisionId)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyCorrelationId)
}

func SetCompanyIdInContext(ctx context.Context, companyId string) context.Context {
	return appctx.Set(ctx, ContextKeyCompanyId, companyId)
}

func SetDivisionIdInContext(ctx context.Context, divisionId string) context.Context {
	return appctx.Set(ctx, ContextKeyDivisionId, divisionId)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return appctx.Set(ctx, ContextKeyCorrelationId, correlationId)
}
