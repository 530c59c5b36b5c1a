package routes

import (
	"redlink/config"
	adminController "redlink/controllers/admin"
	appointmentController "redlink/controllers/appointment"
	authController "redlink/controllers/auth"
	bloodbankController "redlink/controllers/bloodbank"
	donorController "redlink/controllers/donor"
	otpController "redlink/controllers/otp"
	"redlink/logger"
	"redlink/middleware"
	appointmentService "redlink/services/appointment"
	"redlink/services/notification"
	otpService "redlink/services/otp"
	"redlink/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps carries the shared collaborators the route tree needs.
type Deps struct {
	Store      storage.Store
	Dispatcher *notification.Dispatcher
	OTPStore   otpService.Store
	Config     *config.Config
}

// SetupRoutes wires every controller under /api/v1.
func SetupRoutes(app *fiber.App, db *gorm.DB, deps Deps) {
	asyncLogger := logger.NewAsyncLogger(db)
	go asyncLogger.ProcessLog()

	otpSvc := otpService.NewService(deps.OTPStore, deps.Dispatcher, deps.Config.OTP)
	ledger := appointmentService.NewService(deps.Store, deps.Dispatcher)

	auth := authController.NewAuthController(deps.Store, asyncLogger, deps.Config.JWT.AccessExpiry)
	donor := donorController.NewDonorController(deps.Store, deps.Dispatcher, asyncLogger)
	bank := bloodbankController.NewBloodBankController(deps.Store, asyncLogger)
	appt := appointmentController.NewAppointmentController(ledger, asyncLogger)
	otp := otpController.NewOTPController(deps.Store, otpSvc, asyncLogger)
	admin := adminController.NewAdminController(deps.Store, asyncLogger)

	api := app.Group("/api/v1")

	/*=============================================================================
	| Public routes
	===============================================================================*/
	api.Post("/register", auth.Register)
	api.Post("/login", auth.Login)
	api.Post("/logout", auth.Logout)

	api.Get("/search", donor.Search)
	api.Post("/send-emails", donor.SendEmails)
	api.Get("/blood-group-stats", donor.BloodGroupStats)
	api.Get("/blood-banks", bank.List)

	// Blood bank email verification happens before the bank has any session.
	api.Post("/generate-bank-otp", otp.GenerateBankOTP)
	api.Post("/verify-bank-otp", otp.VerifyBankOTP)

	api.Post("/admin-login", auth.AdminLogin)

	/*=============================================================================
	| Donor routes
	===============================================================================*/
	requireAuth := middleware.RequireAuth()
	api.Get("/profile", requireAuth, donor.GetProfile)
	api.Put("/update-profile", requireAuth, donor.UpdateProfile)
	api.Post("/toggle-availability", requireAuth, donor.ToggleAvailability)
	api.Post("/book-appointment", requireAuth, appt.Book)
	api.Post("/generate-otp", requireAuth, otp.Generate)
	api.Post("/verify-otp", requireAuth, otp.Verify)
	api.Post("/add-bloodbank", requireAuth, bank.Add)

	/*=============================================================================
	| Admin routes
	===============================================================================*/
	requireAdmin := middleware.RequireAdmin()
	api.Get("/admin-users", requireAdmin, admin.ListUsers)
	api.Get("/admin-blood-banks", requireAdmin, admin.ListBloodBanks)
	api.Get("/admin-appointments/:status", requireAdmin, appt.ListByStatus)
	api.Delete("/admin-users/:id", requireAdmin, admin.DeleteUser)
	api.Delete("/admin-blood-banks/:id", requireAdmin, admin.DeleteBloodBank)
}
