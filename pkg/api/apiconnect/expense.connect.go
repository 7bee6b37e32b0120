package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/expenseflow/pkg/api"
)

// ExpenseServiceName is the fully-qualified name of the ExpenseService service.
const ExpenseServiceName = "expenseflow.v1.ExpenseService"

const (
	ExpenseServiceCreateExpenseProcedure        = "/expenseflow.v1.ExpenseService/CreateExpense"
	ExpenseServiceGetExpenseProcedure           = "/expenseflow.v1.ExpenseService/GetExpense"
	ExpenseServiceUpdateExpenseProcedure        = "/expenseflow.v1.ExpenseService/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure        = "/expenseflow.v1.ExpenseService/DeleteExpense"
	ExpenseServiceListUploadedExpensesProcedure = "/expenseflow.v1.ExpenseService/ListUploadedExpenses"
	ExpenseServiceListOwnedExpensesProcedure    = "/expenseflow.v1.ExpenseService/ListOwnedExpenses"
	ExpenseServiceGetParticipantStatusProcedure = "/expenseflow.v1.ExpenseService/GetParticipantStatus"
	ExpenseServiceGetAggregateStatusProcedure   = "/expenseflow.v1.ExpenseService/GetAggregateStatus"
	ExpenseServiceGetAllStatusesProcedure       = "/expenseflow.v1.ExpenseService/GetAllStatuses"
	ExpenseServiceSetStatusProcedure            = "/expenseflow.v1.ExpenseService/SetStatus"
	ExpenseServiceGetOverviewProcedure          = "/expenseflow.v1.ExpenseService/GetOverview"
	ExpenseServiceGetOutstandingProcedure       = "/expenseflow.v1.ExpenseService/GetOutstanding"
)

// ExpenseServiceHandler is implemented by the server side of ExpenseService.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ListUploadedExpenses(context.Context, *connect.Request[api.ListUploadedExpensesRequest]) (*connect.Response[api.ListUploadedExpensesResponse], error)
	ListOwnedExpenses(context.Context, *connect.Request[api.ListOwnedExpensesRequest]) (*connect.Response[api.ListOwnedExpensesResponse], error)
	GetParticipantStatus(context.Context, *connect.Request[api.GetParticipantStatusRequest]) (*connect.Response[api.GetParticipantStatusResponse], error)
	GetAggregateStatus(context.Context, *connect.Request[api.GetAggregateStatusRequest]) (*connect.Response[api.GetAggregateStatusResponse], error)
	GetAllStatuses(context.Context, *connect.Request[api.GetAllStatusesRequest]) (*connect.Response[api.GetAllStatusesResponse], error)
	SetStatus(context.Context, *connect.Request[api.SetStatusRequest]) (*connect.Response[api.SetStatusResponse], error)
	GetOverview(context.Context, *connect.Request[api.GetOverviewRequest]) (*connect.Response[api.GetOverviewResponse], error)
	GetOutstanding(context.Context, *connect.Request[api.GetOutstandingRequest]) (*connect.Response[api.GetOutstandingResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler for svc. It returns the path to
// mount the handler on.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	handlers := map[string]http.Handler{
		ExpenseServiceCreateExpenseProcedure:        connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...),
		ExpenseServiceGetExpenseProcedure:           connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts...),
		ExpenseServiceUpdateExpenseProcedure:        connect.NewUnaryHandler(ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, opts...),
		ExpenseServiceDeleteExpenseProcedure:        connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		ExpenseServiceListUploadedExpensesProcedure: connect.NewUnaryHandler(ExpenseServiceListUploadedExpensesProcedure, svc.ListUploadedExpenses, opts...),
		ExpenseServiceListOwnedExpensesProcedure:    connect.NewUnaryHandler(ExpenseServiceListOwnedExpensesProcedure, svc.ListOwnedExpenses, opts...),
		ExpenseServiceGetParticipantStatusProcedure: connect.NewUnaryHandler(ExpenseServiceGetParticipantStatusProcedure, svc.GetParticipantStatus, opts...),
		ExpenseServiceGetAggregateStatusProcedure:   connect.NewUnaryHandler(ExpenseServiceGetAggregateStatusProcedure, svc.GetAggregateStatus, opts...),
		ExpenseServiceGetAllStatusesProcedure:       connect.NewUnaryHandler(ExpenseServiceGetAllStatusesProcedure, svc.GetAllStatuses, opts...),
		ExpenseServiceSetStatusProcedure:            connect.NewUnaryHandler(ExpenseServiceSetStatusProcedure, svc.SetStatus, opts...),
		ExpenseServiceGetOverviewProcedure:          connect.NewUnaryHandler(ExpenseServiceGetOverviewProcedure, svc.GetOverview, opts...),
		ExpenseServiceGetOutstandingProcedure:       connect.NewUnaryHandler(ExpenseServiceGetOutstandingProcedure, svc.GetOutstanding, opts...),
	}
	return "/" + ExpenseServiceName + "/", routeProcedures(handlers)
}

// ExpenseServiceClient is a client for ExpenseService.
type ExpenseServiceClient struct {
	createExpense        *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	getExpense           *connect.Client[api.GetExpenseRequest, api.GetExpenseResponse]
	updateExpense        *connect.Client[api.UpdateExpenseRequest, api.UpdateExpenseResponse]
	deleteExpense        *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	listUploadedExpenses *connect.Client[api.ListUploadedExpensesRequest, api.ListUploadedExpensesResponse]
	listOwnedExpenses    *connect.Client[api.ListOwnedExpensesRequest, api.ListOwnedExpensesResponse]
	getParticipantStatus *connect.Client[api.GetParticipantStatusRequest, api.GetParticipantStatusResponse]
	getAggregateStatus   *connect.Client[api.GetAggregateStatusRequest, api.GetAggregateStatusResponse]
	getAllStatuses       *connect.Client[api.GetAllStatusesRequest, api.GetAllStatusesResponse]
	setStatus            *connect.Client[api.SetStatusRequest, api.SetStatusResponse]
	getOverview          *connect.Client[api.GetOverviewRequest, api.GetOverviewResponse]
	getOutstanding       *connect.Client[api.GetOutstandingRequest, api.GetOutstandingResponse]
}

// NewExpenseServiceClient creates a client for the ExpenseService served at baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withClientCodec(opts)
	return &ExpenseServiceClient{
		createExpense:        connect.NewClient[api.CreateExpenseRequest, api.CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		getExpense:           connect.NewClient[api.GetExpenseRequest, api.GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opts...),
		updateExpense:        connect.NewClient[api.UpdateExpenseRequest, api.UpdateExpenseResponse](httpClient, baseURL+ExpenseServiceUpdateExpenseProcedure, opts...),
		deleteExpense:        connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
		listUploadedExpenses: connect.NewClient[api.ListUploadedExpensesRequest, api.ListUploadedExpensesResponse](httpClient, baseURL+ExpenseServiceListUploadedExpensesProcedure, opts...),
		listOwnedExpenses:    connect.NewClient[api.ListOwnedExpensesRequest, api.ListOwnedExpensesResponse](httpClient, baseURL+ExpenseServiceListOwnedExpensesProcedure, opts...),
		getParticipantStatus: connect.NewClient[api.GetParticipantStatusRequest, api.GetParticipantStatusResponse](httpClient, baseURL+ExpenseServiceGetParticipantStatusProcedure, opts...),
		getAggregateStatus:   connect.NewClient[api.GetAggregateStatusRequest, api.GetAggregateStatusResponse](httpClient, baseURL+ExpenseServiceGetAggregateStatusProcedure, opts...),
		getAllStatuses:       connect.NewClient[api.GetAllStatusesRequest, api.GetAllStatusesResponse](httpClient, baseURL+ExpenseServiceGetAllStatusesProcedure, opts...),
		setStatus:            connect.NewClient[api.SetStatusRequest, api.SetStatusResponse](httpClient, baseURL+ExpenseServiceSetStatusProcedure, opts...),
		getOverview:          connect.NewClient[api.GetOverviewRequest, api.GetOverviewResponse](httpClient, baseURL+ExpenseServiceGetOverviewProcedure, opts...),
		getOutstanding:       connect.NewClient[api.GetOutstandingRequest, api.GetOutstandingResponse](httpClient, baseURL+ExpenseServiceGetOutstandingProcedure, opts...),
	}
}

func (c *ExpenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListUploadedExpenses(ctx context.Context, req *connect.Request[api.ListUploadedExpensesRequest]) (*connect.Response[api.ListUploadedExpensesResponse], error) {
	return c.listUploadedExpenses.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListOwnedExpenses(ctx context.Context, req *connect.Request[api.ListOwnedExpensesRequest]) (*connect.Response[api.ListOwnedExpensesResponse], error) {
	return c.listOwnedExpenses.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetParticipantStatus(ctx context.Context, req *connect.Request[api.GetParticipantStatusRequest]) (*connect.Response[api.GetParticipantStatusResponse], error) {
	return c.getParticipantStatus.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetAggregateStatus(ctx context.Context, req *connect.Request[api.GetAggregateStatusRequest]) (*connect.Response[api.GetAggregateStatusResponse], error) {
	return c.getAggregateStatus.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetAllStatuses(ctx context.Context, req *connect.Request[api.GetAllStatusesRequest]) (*connect.Response[api.GetAllStatusesResponse], error) {
	return c.getAllStatuses.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) SetStatus(ctx context.Context, req *connect.Request[api.SetStatusRequest]) (*connect.Response[api.SetStatusResponse], error) {
	return c.setStatus.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetOverview(ctx context.Context, req *connect.Request[api.GetOverviewRequest]) (*connect.Response[api.GetOverviewResponse], error) {
	return c.getOverview.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetOutstanding(ctx context.Context, req *connect.Request[api.GetOutstandingRequest]) (*connect.Response[api.GetOutstandingResponse], error) {
	return c.getOutstanding.CallUnary(ctx, req)
}

// routeProcedures dispatches on the exact procedure path.
func routeProcedures(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}
