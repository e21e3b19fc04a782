package http

import (
	"net/http"

	adminusers "inbound/frontend/adminUsers"
	exportspage "inbound/frontend/exports"
	"inbound/frontend/help"
	"inbound/frontend/login"
	"inbound/frontend/movements"
	"inbound/frontend/products"
	"inbound/frontend/receiving/editline"
	"inbound/frontend/receiving/labels"
	"inbound/frontend/receiving/lines"
	"inbound/frontend/settings"
	"inbound/infrastructure/rbac"

	"github.com/go-chi/chi/v5"
)

// RegisterLoginRoutes registers login/logout routes.
func (s *Server) RegisterLoginRoutes() {
	s.router.Get("/login", login.GetLoginScreenHandler)
	s.router.Post("/login", login.CreateLoginHandler(s.DB, s.SessionCache, s.Sessions))
	s.router.Post("/logout", login.LogoutHandler(s.DB, s.SessionCache, s.Sessions))
}

// RegisterAdminRoutes registers admin-only routes.
func (s *Server) RegisterAdminRoutes(r chi.Router) chi.Router {
	s.Rbac.Add(rbac.RoleAdmin, "MOVEMENT_STATUS_UPDATE", http.MethodPost, "/inbound/movements/*/status")
	r.Post("/movements/{id}/status", movements.UpdateMovementStatusCommandHandler(s.DB, s.Audit))

	s.Rbac.Add(rbac.RoleAdmin, "PRODUCTS_IMPORT_VIEW", http.MethodGet, "/inbound/products/import")
	r.Get("/products/import", products.ProductImportPageQueryHandler(s.DB))
	s.Rbac.Add(rbac.RoleAdmin, "PRODUCTS_IMPORT", http.MethodPost, "/inbound/products/import")
	r.Post("/products/import", products.ProductImportCommandHandler(s.DB, s.Audit))

	s.Rbac.Add(rbac.RoleAdmin, "SETTINGS_RECEIVING_VIEW", http.MethodGet, "/inbound/settings/receiving")
	r.Get("/settings/receiving", settings.ReceivingSettingsPageHandler(s.DB))
	s.Rbac.Add(rbac.RoleAdmin, "SETTINGS_RECEIVING_EDIT", http.MethodPost, "/inbound/settings/receiving")
	r.Post("/settings/receiving", settings.ReceivingSettingsUpdateHandler(s.DB, s.Audit))

	s.Rbac.Add(rbac.RoleAdmin, "ADMIN_USERS_LIST_VIEW", http.MethodGet, "/inbound/admin/users")
	r.Get("/admin/users", adminusers.UsersPageQueryHandler(s.DB))
	s.Rbac.Add(rbac.RoleAdmin, "ADMIN_USERS_CREATE", http.MethodPost, "/inbound/admin/users")
	r.Post("/admin/users", adminusers.CreateUserCommandHandler(s.DB, s.Audit))
	return r
}

// RegisterFrontendRoutes registers authenticated routes.
func (s *Server) RegisterFrontendRoutes(r chi.Router) chi.Router {
	s.Rbac.Add(rbac.RoleAdmin, "MOVEMENTS_LIST_VIEW", http.MethodGet, "/inbound/movements")
	s.Rbac.Add(rbac.RoleReceiver, "MOVEMENTS_LIST_VIEW", http.MethodGet, "/inbound/movements")
	r.Get("/movements", movements.MovementsPageQueryHandler(s.DB))

	s.addBoth("HELP_VIEW", http.MethodGet, "/inbound/help")
	r.Get("/help", help.HelpPageQueryHandler())

	s.RegisterReceivingRoutes(r)
	s.RegisterExportRoutes(r)
	return r
}

func (s *Server) RegisterReceivingRoutes(r chi.Router) {
	source := lines.EditLineSource{DB: s.DB}
	saver := lines.EditLineSaver{DB: s.DB, Audit: s.Audit}
	minimum := settings.MinimumDate(s.DB, s.MinimumExpirationDate)
	pending := s.PendingEdits
	if pending == nil {
		pending = editline.NewPendingEdits(editline.DefaultPendingTTL)
		s.PendingEdits = pending
	}

	s.addBoth("RECEIVING_VIEW", http.MethodGet, "/inbound/movements/*/receiving")
	r.Get("/movements/{id}/receiving", lines.ReceivingPageQueryHandler(s.DB))

	s.addBoth("RECEIVING_LINE_EDIT_VIEW", http.MethodGet, "/inbound/movements/*/receiving/lines/*/edit")
	r.Get("/movements/{id}/receiving/lines/{lineID}/edit", editline.EditLineModalQueryHandler(source))

	s.addBoth("RECEIVING_LINE_EDIT", http.MethodPost, "/inbound/movements/*/receiving/lines/*/edit")
	r.Post("/movements/{id}/receiving/lines/{lineID}/edit", editline.EditLineCommandHandler(source, saver, minimum, pending))

	s.addBoth("RECEIVING_LINE_EDIT_CONFIRM", http.MethodPost, "/inbound/movements/*/receiving/lines/*/edit/confirm/*")
	r.Post("/movements/{id}/receiving/lines/{lineID}/edit/confirm/{token}", editline.ConfirmEditLineCommandHandler(source, saver, pending))

	s.addBoth("RECEIVING_LINE_LABEL", http.MethodGet, "/inbound/movements/*/receiving/lines/*/label.pdf")
	r.Get("/movements/{id}/receiving/lines/{lineID}/label.pdf", labels.LotLabelQueryHandler(s.DB))
}

func (s *Server) RegisterExportRoutes(r chi.Router) {
	s.addBoth("RECEIVING_EXPORT_CSV", http.MethodGet, "/inbound/movements/*/receiving/export.csv")
	r.Get("/movements/{id}/receiving/export.csv", exportspage.ReceivingExportCSVHandler(s.DB))

	s.addBoth("RECEIVING_EXPORT_XLSX", http.MethodGet, "/inbound/movements/*/receiving/export.xlsx")
	r.Get("/movements/{id}/receiving/export.xlsx", exportspage.ReceivingExportXLSXHandler(s.DB))
}

func (s *Server) addBoth(code, method, path string) {
	s.Rbac.Add(rbac.RoleAdmin, code, method, path)
	s.Rbac.Add(rbac.RoleReceiver, code, method, path)
}
