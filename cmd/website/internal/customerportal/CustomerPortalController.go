package customerportal

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/lorenzwed/lorenzwed/cmd/website/internal/metrics"
	"github.com/lorenzwed/lorenzwed/cmd/website/internal/respond"
	"github.com/lorenzwed/lorenzwed/cmd/website/internal/viewmodels"
	"github.com/lorenzwed/lorenzwed/pkg/identity"
	"github.com/lorenzwed/lorenzwed/pkg/models"
	"github.com/lorenzwed/lorenzwed/pkg/services"
)

type CustomerPortalControllerConfig struct {
	AuthService     services.AuthServicer
	CookieSecure    bool
	WorkflowService services.AlbumWorkflowServicer
}

type CustomerPortalController struct {
	authService     services.AuthServicer
	cookieSecure    bool
	workflowService services.AlbumWorkflowServicer
}

func NewCustomerPortalController(config CustomerPortalControllerConfig) CustomerPortalController {
	return CustomerPortalController{
		authService:     config.AuthService,
		cookieSecure:    config.CookieSecure,
		workflowService: config.WorkflowService,
	}
}

/*
POST /api/customer-login
*/
func (c CustomerPortalController) LoginAction(w http.ResponseWriter, r *http.Request) {
	var (
		err      error
		body     viewmodels.LoginRequest
		customer *models.Customer
		token    string
	)

	if err = httphelpers.ReadJSONBody(r, &body); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	if customer, token, err = c.authService.Login(r.Context(), body.Username, body.Password); err != nil {
		if errors.Is(err, models.ErrAuthentication) {
			slog.Info("customer login failed", "username", body.Username)
			metrics.RecordLogin(false)
		}

		respond.Error(w, r, err)
		return
	}

	metrics.RecordLogin(true)
	slog.Info("customer logged in", "customerID", customer.ID)

	http.SetCookie(w, identity.NewSessionCookie(token, c.cookieSecure))

	respond.OK(w, viewmodels.LoginResponse{
		OK:       true,
		Customer: viewmodels.NewCustomerInfo(customer),
	})
}

/*
POST /api/customer-logout
*/
func (c CustomerPortalController) LogoutAction(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, identity.ExpiredSessionCookie(c.cookieSecure))
	respond.OK(w, viewmodels.OKResponse{OK: true})
}

/*
GET /api/customer/me
*/
func (c CustomerPortalController) Me(w http.ResponseWriter, r *http.Request) {
	customer, err := c.authService.CurrentCustomer(r.Context(), viewmodels.GetCustomerIDFromContext(r))

	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, customer)
}

/*
GET /api/customer/album
*/
func (c CustomerPortalController) Album(w http.ResponseWriter, r *http.Request) {
	view, err := c.workflowService.GetCustomerAlbum(r.Context(), viewmodels.GetCustomerIDFromContext(r))

	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, viewmodels.NewCustomerAlbum(view))
}

/*
PUT /api/customer/selection
*/
func (c CustomerPortalController) SaveSelection(w http.ResponseWriter, r *http.Request) {
	var (
		err  error
		body viewmodels.SelectionRequest
	)

	if err = httphelpers.ReadJSONBody(r, &body); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	customerID := viewmodels.GetCustomerIDFromContext(r)

	if err = c.workflowService.SetSelection(r.Context(), customerID, services.NormalizePhotoIDs(body.PhotoIDs)); err != nil {
		respond.Error(w, r, err)
		return
	}

	metrics.RecordSelection()
	respond.OK(w, viewmodels.OKResponse{OK: true})
}

/*
POST /api/customer/approve
*/
func (c CustomerPortalController) Approve(w http.ResponseWriter, r *http.Request) {
	customerID := viewmodels.GetCustomerIDFromContext(r)

	if err := c.workflowService.Approve(r.Context(), customerID); err != nil {
		respond.Error(w, r, err)
		return
	}

	metrics.RecordApproval()
	slog.Info("album approved", "customerID", customerID)
	respond.OK(w, viewmodels.OKResponse{OK: true})
}
