package api

import (
	"net/http"

	"fleet-management/internal/api/middleware"
	"fleet-management/internal/modules/company"
	"fleet-management/internal/modules/dashboard"
	"fleet-management/internal/modules/driver"
	"fleet-management/internal/modules/fixedtrip"
	"fleet-management/internal/modules/floatingtrip"
	"fleet-management/internal/modules/payment"
	"fleet-management/internal/modules/report"
	"fleet-management/internal/modules/route"
	"fleet-management/internal/modules/user"
	"fleet-management/internal/modules/vehicle"

	"github.com/labstack/echo/v4"
)

// Handlers bundles every module handler the router mounts.
type Handlers struct {
	User         *user.Handler
	Driver       *driver.Handler
	Vehicle      *vehicle.Handler
	Route        *route.Handler
	FixedTrip    *fixedtrip.Handler
	FloatingTrip *floatingtrip.Handler
	Payment      *payment.Handler
	Report       *report.Handler
	Company      *company.Handler
	Dashboard    *dashboard.Handler
}

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(e *echo.Echo, h Handlers, jwtSecret string, loginPerMinute int) {
	authMiddleware := middleware.JWTMAuth(jwtSecret)
	adminRequired := middleware.AdminRequired()

	// --- Public Routes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Fleet management API"})
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", h.User.Login, middleware.LoginRateLimiter(loginPerMinute))
		authGroup.GET("/me", h.User.GetMe, authMiddleware)
	}

	// --- User Management (admin) ---
	userGroup := e.Group("/users", authMiddleware, adminRequired)
	{
		userGroup.GET("", h.User.ListUsers)
		userGroup.POST("", h.User.CreateUser)
		userGroup.GET("/:userId", h.User.GetUser)
		userGroup.PUT("/:userId", h.User.UpdateUser)
		userGroup.DELETE("/:userId", h.User.DeleteUser)
	}

	// --- Masters ---
	driverGroup := e.Group("/drivers", authMiddleware)
	{
		driverGroup.GET("", h.Driver.ListDrivers)
		driverGroup.POST("", h.Driver.CreateDriver)
		driverGroup.GET("/:driverId", h.Driver.GetDriver)
		driverGroup.PUT("/:driverId", h.Driver.UpdateDriver)
		driverGroup.DELETE("/:driverId", h.Driver.DeleteDriver, adminRequired)
	}

	vehicleGroup := e.Group("/vehicles", authMiddleware)
	{
		vehicleGroup.GET("", h.Vehicle.ListVehicles)
		vehicleGroup.POST("", h.Vehicle.CreateVehicle)
		vehicleGroup.GET("/:vehicleId", h.Vehicle.GetVehicle)
		vehicleGroup.PUT("/:vehicleId", h.Vehicle.UpdateVehicle)
		vehicleGroup.DELETE("/:vehicleId", h.Vehicle.DeleteVehicle, adminRequired)
	}
	e.GET("/vehicle-types", h.Vehicle.ListVehicleTypes, authMiddleware)
	e.POST("/vehicle-types", h.Vehicle.AddVehicleType, authMiddleware, adminRequired)

	routeGroup := e.Group("/routes", authMiddleware)
	{
		routeGroup.GET("", h.Route.ListRoutes)
		routeGroup.POST("", h.Route.CreateRoute)
		routeGroup.GET("/:routeId", h.Route.GetRoute)
		routeGroup.PUT("/:routeId", h.Route.UpdateRoute)
		routeGroup.DELETE("/:routeId", h.Route.DeleteRoute, adminRequired)
	}

	// --- Trips ---
	fixedGroup := e.Group("/fixed-trips", authMiddleware)
	{
		fixedGroup.GET("", h.FixedTrip.ListFixedTrips)
		fixedGroup.POST("", h.FixedTrip.CreateFixedTrip)
		fixedGroup.GET("/next-document-no", h.FixedTrip.NextDocumentNo)
		fixedGroup.GET("/:tripId", h.FixedTrip.GetFixedTrip)
		fixedGroup.PUT("/:tripId", h.FixedTrip.UpdateFixedTrip)
		fixedGroup.DELETE("/:tripId", h.FixedTrip.DeleteFixedTrip, adminRequired)
	}

	floatingGroup := e.Group("/floating-trips", authMiddleware)
	{
		floatingGroup.GET("", h.FloatingTrip.ListFloatingTrips)
		floatingGroup.POST("", h.FloatingTrip.CreateFloatingTrip)
		floatingGroup.POST("/preview", h.FloatingTrip.Preview)
		floatingGroup.GET("/next-document-no", h.FloatingTrip.NextDocumentNo)
		floatingGroup.GET("/export.xlsx", h.FloatingTrip.ExportFloatingTrips)
		floatingGroup.GET("/:tripId", h.FloatingTrip.GetFloatingTrip)
		floatingGroup.PUT("/:tripId", h.FloatingTrip.UpdateFloatingTrip)
		floatingGroup.DELETE("/:tripId", h.FloatingTrip.DeleteFloatingTrip, adminRequired)
	}

	// --- Payments ---
	paymentGroup := e.Group("/payments", authMiddleware)
	{
		paymentGroup.GET("", h.Payment.ListPayments)
		paymentGroup.POST("", h.Payment.CreatePayment)
		paymentGroup.GET("/balance", h.Payment.GetBalance)
		paymentGroup.GET("/next-document-no", h.Payment.NextDocumentNo)
		paymentGroup.GET("/:paymentId", h.Payment.GetPayment)
		paymentGroup.PUT("/:paymentId", h.Payment.UpdatePayment)
		paymentGroup.DELETE("/:paymentId", h.Payment.DeletePayment, adminRequired)
	}

	// --- Reports ---
	reportGroup := e.Group("/reports", authMiddleware)
	{
		reportGroup.GET("/driver-ledger", h.Report.DriverLedger)
		reportGroup.GET("/driver-ledger/export.xlsx", h.Report.ExportDriverLedger)
		reportGroup.POST("/driver-ledger/email", h.Report.EmailDriverLedger)
	}

	// --- Company & Dashboard ---
	e.GET("/company", h.Company.GetCompany, authMiddleware)
	e.POST("/company", h.Company.SaveCompany, authMiddleware, adminRequired)
	e.GET("/dashboard", h.Dashboard.GetDashboard, authMiddleware)
}
