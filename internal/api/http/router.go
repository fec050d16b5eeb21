package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/taskroom/internal/storage"
)

func SetupRouter(
	roomController *RoomController,
	userController *UserController,
	suggestController *SuggestController,
	wsController *WSController,
	uploadsDir string,
) *gin.Engine {
	router := gin.Default()
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}
	config.AllowCredentials = true
	config.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"Origin",
		"Accept",
		"X-User-ID",
		"X-User-Name",
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	router.Use(cors.New(config))
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	if uploadsDir != "" {
		router.Static(storage.PublicPrefix, uploadsDir)
	}

	if wsController != nil {
		router.GET("/ws", wsController.Connect)
	}

	if userController != nil {
		users := router.Group("/users")
		users.POST("/create", userController.CreateUser)
		users.GET("/:userID", userController.GetUser)
	}

	if roomController != nil {
		router.GET("/rooms", roomController.ListRooms)

		rooms := router.Group("/rooms")
		rooms.Use(Identity())
		rooms.POST("", roomController.CreateRoom)
		rooms.POST("/delete/:roomName", roomController.DeleteRoom)
		rooms.POST("/add-shared-task", roomController.AddSharedTask)
		rooms.POST("/edit-shared-task/:id", roomController.EditSharedTask)
		rooms.POST("/delete-shared-task/:id", roomController.DeleteSharedTask)
		rooms.POST("/accept-task/:id", roomController.AcceptTask)
		rooms.POST("/decline-task/:id", roomController.DeclineTask)
		rooms.POST("/complete-shared-task/:id", roomController.CompleteSharedTask)
	}

	if suggestController != nil {
		router.POST("/suggest", suggestController.Suggest)
	}

	return router
}
