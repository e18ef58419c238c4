package routes

import (
	"time"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/api/handlers"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRoutes sets up all the routes for the server. loc is the business
// timezone used to interpret date-only query parameters.
func SetupRoutes(
	r *gin.Engine,
	deliverySvc service.DeliveryService,
	scheduleSvc service.ScheduleService,
	attachmentSvc service.AttachmentService,
	clientSvc service.ClientService,
	contaminationSvc service.ContaminationService,
	reportSvc service.ReportService,
	loc *time.Location,
	log *logrus.Logger,
) {
	// Health check
	r.GET("/health", handlers.HealthCheck)

	// API routes
	api := r.Group("/api/v1")

	// Client and contract routes
	clientHandler := handlers.NewClientHandler(clientSvc, log)
	clients := api.Group("/clients")
	{
		clients.POST("", clientHandler.CreateClient)
		clients.GET("", clientHandler.ListClients)
		clients.GET("/:id", clientHandler.GetClient)
	}
	contracts := api.Group("/contracts")
	{
		contracts.POST("", clientHandler.CreateContract)
		contracts.GET("", clientHandler.ListContracts)
	}

	// Intake ticket and schedule routes
	scheduleHandler := handlers.NewScheduleHandler(scheduleSvc, loc, log)
	intake := api.Group("/intake")
	{
		intake.POST("", scheduleHandler.CreateTicket)
		intake.GET("", scheduleHandler.ListTickets)
		intake.GET("/:id", scheduleHandler.GetTicket)
		intake.PATCH("/:id", scheduleHandler.UpdateTicket)
	}
	sched := api.Group("/schedule")
	{
		sched.GET("/days", scheduleHandler.Days)
		sched.GET("/today", scheduleHandler.Today)
		sched.GET("/upcoming", scheduleHandler.Upcoming)
		sched.GET("/summary", scheduleHandler.Summary)
	}

	// Delivery record routes
	deliveryHandler := handlers.NewDeliveryHandler(deliverySvc, log)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentSvc, log)
	deliveries := api.Group("/deliveries")
	{
		deliveries.GET("", deliveryHandler.ListRecords)
		deliveries.GET("/:vr", deliveryHandler.GetRecord)
		deliveries.POST("/:vr/ensure", deliveryHandler.EnsureRecord)
		deliveries.POST("/:vr/delivered", deliveryHandler.MarkDelivered)
		deliveries.POST("/:vr/undo", deliveryHandler.UndoDelivery)
		deliveries.PATCH("/:vr/tonnage", deliveryHandler.UpdateTonnage)
		deliveries.PATCH("/:vr/notes", deliveryHandler.UpdateNotes)

		// Documentation photos and weigh tickets
		deliveries.POST("/:vr/photos", attachmentHandler.UploadPhoto)
		deliveries.DELETE("/:vr/photos", attachmentHandler.DeletePhoto)
		deliveries.POST("/:vr/tickets", attachmentHandler.UploadWeightTicket)
		deliveries.DELETE("/:vr/tickets", attachmentHandler.DeleteWeightTicket)
	}

	// Contamination log routes
	contaminationHandler := handlers.NewContaminationHandler(contaminationSvc, log)
	contamination := api.Group("/contamination")
	{
		contamination.POST("", contaminationHandler.LogEvent)
		contamination.GET("", contaminationHandler.ListEvents)
		contamination.GET("/:id", contaminationHandler.GetEvent)
	}

	// Impact report routes
	reportHandler := handlers.NewReportHandler(reportSvc, loc, log)
	reports := api.Group("/reports")
	{
		reports.GET("/impact", reportHandler.ImpactSummary)
		reports.GET("/impact/export", reportHandler.ExportImpact)
	}
}
