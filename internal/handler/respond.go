package handler

import (
	"log"
	"net/http"

	"github.com/Donkoyote123/werk-asset-management-system/internal/ledger"
	"github.com/Donkoyote123/werk-asset-management-system/internal/util"

	"github.com/gin-gonic/gin"
)

// ledgerError translates a ledger failure into the HTTP envelope. Store
// internals are logged, never sent to the client.
func ledgerError(c *gin.Context, err error) {
	le := ledger.AsError(err)
	if le == nil {
		log.Printf("unexpected ledger error: %v", err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error")
		return
	}

	switch le.Kind {
	case ledger.KindValidation:
		util.Error(c, http.StatusBadRequest, le.Code, le.Message)
	case ledger.KindConflict:
		util.Error(c, http.StatusConflict, le.Code, le.Message)
	case ledger.KindNotFound:
		util.Error(c, http.StatusNotFound, le.Code, le.Message)
	default:
		log.Printf("ledger persistence failure: %v", le)
		util.Error(c, http.StatusInternalServerError, le.Code, "storage failure")
	}
}
