package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wallet-guard/api-go/controllers"
)

func SetupVoteRoutes(rg *gin.RouterGroup, voteController *controllers.VoteController) {
	rg.POST("/votes", voteController.CastVote)
	rg.DELETE("/votes", voteController.RemoveVote)
	rg.POST("/votes/sync", voteController.SyncReportVoters)
}
