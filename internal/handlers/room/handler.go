package room

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/featured", handler.GetFeaturedRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Put("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
		routerGroup.Post("/{id}/images", handler.UploadRoomImage)
	})
}

// GetRooms lists rooms.
// @Summary List rooms
// @Description List rooms matching every given filter.
// @Tags Room
// @Produce json
// @Param roomType query string false "Exact room type"
// @Param available query boolean false "Only bookable rooms when true"
// @Param capacity query integer false "Minimum capacity"
// @Param minPrice query number false "Minimum nightly price"
// @Param maxPrice query number false "Maximum nightly price"
// @Param pagination query gDto.QueryParams false "Optional paging and sorting"
// @Success 200 {object} response.List[dto.RoomResponse] "Rooms"
// @Failure 400 {object} response.Error
// @Router /api/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	filter := dto.RoomFilter{}
	if err := filter.FromRequest(r); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse room filter")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	rooms, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	response.WithList(w, http.StatusOK, rooms.Rooms)
}

// GetFeaturedRooms lists featured rooms that can be booked.
// @Summary List featured rooms
// @Tags Room
// @Produce json
// @Success 200 {object} response.List[dto.RoomResponse] "Featured rooms"
// @Router /api/rooms/featured [get]
func (handler *Handler) GetFeaturedRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeaturedRooms")
	defer scope.End()

	rooms, err := handler.service.GetFeatured(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get featured rooms")

		response.WithError(w, err)

		return
	}

	response.WithList(w, http.StatusOK, rooms.Rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// CreateRoom handles the creation of a new room.
// @Summary Create a room
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Room"
// @Success 201 {object} response.Data[dto.RoomResponse] "Created room"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /api/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	req := dto.CreateRoomRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	room, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, room)
}

// UpdateRoom updates an existing room by its ID.
// @Summary Update a room
// @Description Only the given fields change.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Fields to change"
// @Success 200 {object} response.Data[dto.RoomResponse] "Updated room"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/rooms/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UpdateRoomRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	room, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, room)
}

// DeleteRoom deletes a room by its ID.
// @Summary Delete a room
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message "Room deleted successfully"
// @Failure 404 {object} response.Error
// @Router /api/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}

// UploadRoomImage stores an image and appends it to the room.
// @Summary Upload a room image
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Room ID"
// @Param image formData file true "PNG, JPEG or WebP, at most 5 MB"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room with the new image"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/rooms/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) UploadRoomImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadRoomImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UploadRoomImageRequest{}

	file, fileHeader, err := r.FormFile(constant.FormImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	room, err := handler.service.UploadImage(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload room image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}
