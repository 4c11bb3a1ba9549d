// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-video-vault/internal/logger"
	"github.com/MKhiriev/go-video-vault/internal/utils"
	"github.com/MKhiriev/go-video-vault/models"
	"github.com/go-chi/chi/v5"
)

// maxVideoFormMemory caps how much of the multipart body is held in memory
// before the stdlib spills the rest to temporary files.
const maxVideoFormMemory = 32 << 20

// createOrder handles POST /api/orders. The request is a multipart form with
// fields "transaction_send_to", "amount", "video_name" and a "video" file
// part carrying the payload to encrypt and sign.
func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxVideoFormMemory); err != nil {
		log.Err(err).Msg("invalid multipart form")
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid multipart form"}, http.StatusBadRequest)
		return
	}

	recipientName := r.FormValue("transaction_send_to")
	amount := r.FormValue("amount")
	videoName := r.FormValue("video_name")

	file, _, err := r.FormFile("video")
	if err != nil {
		log.Err(err).Msg("video file is required")
		utils.WriteJSON(w, models.ErrorResponse{Error: "video file is required"}, http.StatusBadRequest)
		return
	}
	defer file.Close()

	video, err := io.ReadAll(file)
	if err != nil {
		log.Err(err).Msg("cannot read video file")
		utils.WriteJSON(w, models.ErrorResponse{Error: "cannot read video file"}, http.StatusBadRequest)
		return
	}

	created, err := h.services.OrderService.CreateOrder(ctx, userID, recipientName, amount, videoName, video)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createOrder").Msg("error creating order")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

// ordersReceived handles GET /api/orders/received and lists the orders
// addressed to the authenticated user.
func (h *Handler) ordersReceived(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	orders, err := h.services.OrderService.OrdersReceived(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.ordersReceived").Msg("error listing received orders")
		writeServiceError(w, err)
		return
	}

	if orders == nil {
		orders = []models.ReceivedOrder{}
	}

	utils.WriteJSON(w, orders, http.StatusOK)
}

// validateOrder handles POST /api/orders/{id}/validate. On success the
// response carries the decrypted payload base64-encoded.
func (h *Handler) validateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Err(err).Msg("invalid order id")
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid order id"}, http.StatusBadRequest)
		return
	}

	validated, err := h.services.OrderService.ValidateOrder(ctx, orderID, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.validateOrder").Int64("order_id", orderID).Msg("error validating order")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, validated, http.StatusOK)
}
