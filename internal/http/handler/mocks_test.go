package handler_test

import (
	"context"

	"github.com/sathesh-kumar-v/comply/internal/engine"
	"github.com/sathesh-kumar-v/comply/internal/service"
)

type mockActionService struct {
	dashboardFn    func(ctx context.Context) (*service.Dashboard, error)
	getActionFn    func(ctx context.Context, actionID string) (*service.ActionDetail, error)
	createActionFn func(ctx context.Context, params service.ActionCreateParams) (*service.ActionCreateResult, error)
	generatePlanFn func(ctx context.Context, req engine.PlanRequest) engine.ActionPlan
	refreshFn      func(ctx context.Context, actionID string) error

	createParams *service.ActionCreateParams
	planRequest  *engine.PlanRequest
}

func (m *mockActionService) Dashboard(ctx context.Context) (*service.Dashboard, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn(ctx)
	}
	return &service.Dashboard{}, nil
}

func (m *mockActionService) GetAction(ctx context.Context, actionID string) (*service.ActionDetail, error) {
	if m.getActionFn != nil {
		return m.getActionFn(ctx, actionID)
	}
	return &service.ActionDetail{}, nil
}

func (m *mockActionService) CreateAction(ctx context.Context, params service.ActionCreateParams) (*service.ActionCreateResult, error) {
	m.createParams = &params
	if m.createActionFn != nil {
		return m.createActionFn(ctx, params)
	}
	return &service.ActionCreateResult{}, nil
}

func (m *mockActionService) GeneratePlan(ctx context.Context, req engine.PlanRequest) engine.ActionPlan {
	m.planRequest = &req
	if m.generatePlanFn != nil {
		return m.generatePlanFn(ctx, req)
	}
	return engine.ActionPlan{}
}

func (m *mockActionService) RefreshAssessment(ctx context.Context, actionID string) error {
	if m.refreshFn != nil {
		return m.refreshFn(ctx, actionID)
	}
	return nil
}
