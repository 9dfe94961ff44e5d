package app

import (
	"net/http"

	"github.com/wilkadeals/locauto/internal/handler"
	"github.com/wilkadeals/locauto/internal/middleware"
)

func (app *Application) Routes() http.Handler {
	mux := http.NewServeMux()

	middlewareRepo := middleware.New(app.ErrorHandler, app.Logger, app.DB.User(), &app.Config)

	healthHandler := handler.NewHealthCheckHandler(app.ErrorHandler)

	authHandler := handler.NewAuthHandler(&handler.AuthHandler{
		UserRepo:         app.DB.User(),
		ActivityRepo:     app.DB.Activity(),
		NotificationRepo: app.DB.Notification(),
		Helper:           app.Helper,
		Mailer:           app.Mailer,
		Config:           &app.Config,
		ErrHandler:       app.ErrorHandler,
	})

	vehicleHandler := handler.NewVehicleHandler(&handler.VehicleHandler{
		VehicleRepo: app.DB.Vehicle(),
		ErrHandler:  app.ErrorHandler,
	})

	locationHandler := handler.NewLocationHandler(&handler.LocationHandler{
		LocationRepo: app.DB.Location(),
		ErrHandler:   app.ErrorHandler,
	})

	promotionHandler := handler.NewPromotionHandler(&handler.PromotionHandler{
		PromotionRepo: app.DB.Promotion(),
		ErrHandler:    app.ErrorHandler,
	})

	reservationHandler := handler.NewReservationHandler(&handler.ReservationHandler{
		ReservationRepo:  app.DB.Reservation(),
		VehicleRepo:      app.DB.Vehicle(),
		LocationRepo:     app.DB.Location(),
		PromotionRepo:    app.DB.Promotion(),
		ActivityRepo:     app.DB.Activity(),
		NotificationRepo: app.DB.Notification(),
		Helper:           app.Helper,
		Kafka:            app.Kafka,
		Config:           &app.Config,
		ErrHandler:       app.ErrorHandler,
	})

	documentHandler := handler.NewDocumentHandler(&handler.DocumentHandler{
		DB:           app.DB,
		DocumentRepo: app.DB.Document(),
		UserRepo:     app.DB.User(),
		ActivityRepo: app.DB.Activity(),
		FileUploader: app.FileUploader,
		Helper:       app.Helper,
		ErrHandler:   app.ErrorHandler,
	})

	notificationHandler := handler.NewNotificationHandler(&handler.NotificationHandler{
		NotificationRepo: app.DB.Notification(),
		Cache:            app.Cache,
		ErrHandler:       app.ErrorHandler,
	})

	adminHandler := handler.NewAdminHandler(&handler.AdminHandler{
		DB:               app.DB,
		UserRepo:         app.DB.User(),
		DocumentRepo:     app.DB.Document(),
		ReservationRepo:  app.DB.Reservation(),
		PaymentRepo:      app.DB.Payment(),
		NotificationRepo: app.DB.Notification(),
		ActivityRepo:     app.DB.Activity(),
		FileUploader:     app.FileUploader,
		Helper:           app.Helper,
		Kafka:            app.Kafka,
		ErrHandler:       app.ErrorHandler,
	})

	mux.HandleFunc("GET /status", healthHandler.HandleHealthCheck)

	mux.HandleFunc("POST /auth/register", authHandler.HandleAuthRegister)
	mux.HandleFunc("POST /auth/login", authHandler.HandleAuthLogin)

	// public catalog
	mux.HandleFunc("GET /vehicles", vehicleHandler.HandleListVehicles)
	mux.HandleFunc("GET /vehicles/{id}", vehicleHandler.HandleGetVehicle)
	mux.HandleFunc("GET /delivery-locations", locationHandler.HandleListLocations)
	mux.HandleFunc("GET /promotions", promotionHandler.HandleListPromotions)
	mux.HandleFunc("POST /reservations/quote", reservationHandler.HandleQuoteReservation)

	authenticated := func(fn http.HandlerFunc) http.Handler {
		return middlewareRepo.RequireAuthenticatedUser(fn)
	}

	mux.Handle("POST /reservations", authenticated(reservationHandler.HandleCreateReservation))
	mux.Handle("GET /reservations", authenticated(reservationHandler.HandleListMyReservations))

	mux.Handle("POST /documents/{type}", authenticated(documentHandler.HandleUploadDocument))
	mux.Handle("GET /documents", authenticated(documentHandler.HandleListMyDocuments))

	mux.Handle("GET /notifications", authenticated(notificationHandler.HandleListMyNotifications))
	mux.Handle("POST /notifications/read", authenticated(notificationHandler.HandleMarkNotificationsRead))
	mux.Handle("GET /notifications/unread-count", authenticated(notificationHandler.HandleUnreadNotificationCount))

	admin := func(fn http.HandlerFunc) http.Handler {
		return middlewareRepo.RequireAdminUser(fn)
	}

	mux.Handle("GET /admin/users", admin(adminHandler.HandleListUsers))
	mux.Handle("POST /admin/users/{id}/approve", admin(adminHandler.HandleApproveUser))
	mux.Handle("POST /admin/users/{id}/reject", admin(adminHandler.HandleRejectUser))

	mux.Handle("GET /admin/reservations", admin(adminHandler.HandleListReservations))
	mux.Handle("POST /admin/reservations/{id}/receipt", admin(adminHandler.HandleAttachReceipt))

	mux.Handle("GET /admin/vehicles", admin(vehicleHandler.HandleAdminListVehicles))
	mux.Handle("POST /admin/vehicles", admin(vehicleHandler.HandleCreateVehicle))
	mux.Handle("PUT /admin/vehicles/{id}", admin(vehicleHandler.HandleUpdateVehicle))
	mux.Handle("DELETE /admin/vehicles/{id}", admin(vehicleHandler.HandleDeleteVehicle))

	mux.Handle("POST /admin/delivery-locations", admin(locationHandler.HandleCreateLocation))
	mux.Handle("PUT /admin/delivery-locations/{id}", admin(locationHandler.HandleUpdateLocation))
	mux.Handle("DELETE /admin/delivery-locations/{id}", admin(locationHandler.HandleDeleteLocation))

	mux.Handle("POST /admin/promotions", admin(promotionHandler.HandleCreatePromotion))
	mux.Handle("PUT /admin/promotions/{id}", admin(promotionHandler.HandleUpdatePromotion))
	mux.Handle("DELETE /admin/promotions/{id}", admin(promotionHandler.HandleDeletePromotion))

	return middlewareRepo.LogAccess(middlewareRepo.RecoverPanic(middlewareRepo.Authenticate(mux)))
}
