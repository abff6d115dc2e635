package prefsrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/job-alerts/pkg/adapter/restful/gin/serdser"
)

type radiusReq struct {
	RadiusKm float64 `json:"radius_km" binding:"required,gt=0"`
}

type pushTokenReq struct {
	Token string `json:"token" binding:"required"`
}

func (rs *resource) DserRadiusReq(c *gin.Context) *radiusReq {
	req := &radiusReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}

func (rs *resource) DserPushTokenReq(c *gin.Context) *pushTokenReq {
	req := &pushTokenReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}
