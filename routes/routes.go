package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/openbingo/board-server/controllers"
	"github.com/openbingo/board-server/services"
)

// SetupRoutes registers the request/response half of the command
// gateway. Paths match the board firmware so existing clients work.
func SetupRoutes(r *gin.Engine, e *services.Engine) {
	// ----------------------
	// State routes
	// ----------------------
	r.GET("/api/state", controllers.GetState(e))
	r.GET("/api/card-state", controllers.GetCardState(e))

	// ----------------------
	// Board auth routes
	// ----------------------
	r.POST("/auth/board/unlock", controllers.UnlockBoard(e))
	r.POST("/auth/board/lock", controllers.LockBoard(e))
	r.POST("/auth/board/refresh", controllers.RefreshBoardAuth(e))
	r.POST("/board/pin", controllers.ChangeBoardPin(e))

	// ----------------------
	// Number calling routes
	// ----------------------
	r.POST("/draw", controllers.Draw(e))
	r.POST("/call", controllers.CallNumber(e))
	r.POST("/undo", controllers.Undo(e))
	r.POST("/reset", controllers.Reset(e))

	// ----------------------
	// Game configuration routes
	// ----------------------
	r.POST("/calling-style", controllers.SetCallingStyle(e))
	r.POST("/game-type", controllers.SetGameType(e))
	r.POST("/declare-winner", controllers.DeclareWinner(e))
	r.POST("/clear-winner", controllers.ClearWinner(e))

	// ----------------------
	// Display routes
	// ----------------------
	r.POST("/led-test", controllers.LedTest(e))
	r.POST("/brightness", controllers.Brightness(e))
	r.POST("/theme", controllers.SetTheme(e))
	r.POST("/color", controllers.SetStaticColor(e))

	// ----------------------
	// Card routes
	// ----------------------
	r.POST("/card/join", controllers.JoinCard(e))
	r.POST("/card/mark", controllers.MarkCard(e))
	r.POST("/card/leave", controllers.LeaveCard(e))
}
