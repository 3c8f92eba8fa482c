package handler

import (
	"errors"
	"net/http"
	"shortlink-service/config"
	"shortlink-service/internal/models"
	"shortlink-service/internal/response"
	"shortlink-service/internal/service"
	"shortlink-service/internal/shortcode"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type LinkHandler struct {
	links  *service.ShortLinkService
	clicks *service.ClickService
	cfg    *config.Config
}

func NewLinkHandler(links *service.ShortLinkService, clicks *service.ClickService, cfg *config.Config) *LinkHandler {
	return &LinkHandler{
		links:  links,
		clicks: clicks,
		cfg:    cfg,
	}
}

type CreateLinkRequest struct {
	URL        string `json:"url" binding:"required,url"`
	CustomCode string `json:"custom_code" binding:"omitempty"`
	Strategy   string `json:"strategy" binding:"omitempty"`
	ExpiresIn  string `json:"expires_in" binding:"omitempty"`
}

// Create godoc
//
//	@Summary		Создание короткой ссылки
//	@Description	Создаёт короткую ссылку: кастомный код занимается напрямую, иначе код генерируется выбранной стратегией
//	@Tags			links
//	@Accept			json
//	@Produce		json
//	@Param			link	body		CreateLinkRequest			true	"Параметры создания ссылки"
//	@Success		201		{object}	response.ShortLinkResponse	"Созданная ссылка"
//	@Failure		400		{object}	response.ErrorResponse		"Ошибка валидации"
//	@Failure		409		{object}	response.ErrorResponse		"Код уже занят"
//	@Failure		503		{object}	response.ErrorResponse		"Не удалось подобрать свободный код"
//	@Failure		500		{object}	response.ErrorResponse		"Ошибка сервера"
//	@Router			/api/v1/links [post]
func (h *LinkHandler) Create(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Ошибка валидации"})
		return
	}

	in := service.CreateLinkInput{
		LongURL:    req.URL,
		CustomCode: req.CustomCode,
		Strategy:   req.Strategy,
	}
	if req.ExpiresIn != "" {
		ttl, err := time.ParseDuration(req.ExpiresIn)
		if err != nil || ttl <= 0 {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Некорректный срок жизни ссылки"})
			return
		}
		in.ExpireAfter = &ttl
	}

	link, err := h.links.CreateShortLink(in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCustomCode):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Некорректный кастомный код"})
		case errors.Is(err, shortcode.ErrInvalidArguments):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Неизвестная стратегия генерации"})
		case errors.Is(err, service.ErrCustomCodeTaken):
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: "Код уже занят"})
		case errors.Is(err, service.ErrCodeSpaceExhausted):
			c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: "Не удалось подобрать свободный код, повторите попытку позже"})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Ошибка сервера"})
		}
		return
	}

	c.JSON(http.StatusCreated, h.toResponse(link))
}

// Redirect godoc
//
//	@Summary		Редирект по короткому коду
//	@Description	Фиксирует переход и перенаправляет на исходный URL
//	@Tags			redirect
//	@Param			code	path	string	true	"Короткий код"
//	@Success		302
//	@Failure		404	{object}	response.ErrorResponse	"Ссылка не найдена"
//	@Failure		410	{object}	response.ErrorResponse	"Срок действия ссылки истёк"
//	@Router			/{code} [get]
func (h *LinkHandler) Redirect(c *gin.Context) {
	code := c.Param("code")

	link, err := h.links.Resolve(c.Request.Context(), code)
	if err != nil {
		h.writeLookupError(c, err)
		return
	}

	// ошибка записи клика не должна ломать редирект
	_ = h.clicks.RecordClick(c.Request.Context(), link, service.ClickInput{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referer:   c.Request.Referer(),
	})

	c.Redirect(http.StatusFound, link.LongURL)
}

type TrackRequest struct {
	Location *TrackLocation `json:"location"`
}

type TrackLocation struct {
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	Accuracy          float64 `json:"accuracy"`
	PermissionGranted bool    `json:"permission_granted"`
}

// Track godoc
//
//	@Summary		Фиксация перехода
//	@Description	Записывает клик без редиректа; геолокация сохраняется только при явном разрешении клиента
//	@Tags			links
//	@Accept			json
//	@Produce		json
//	@Param			code	path		string					true	"Короткий код"
//	@Param			click	body		TrackRequest			false	"Данные клика"
//	@Success		200		{object}	response.TrackResponse	"Клик зафиксирован"
//	@Failure		404		{object}	response.ErrorResponse	"Ссылка не найдена"
//	@Failure		410		{object}	response.ErrorResponse	"Срок действия ссылки истёк"
//	@Router			/api/v1/links/{code}/track [post]
func (h *LinkHandler) Track(c *gin.Context) {
	link, err := h.links.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeLookupError(c, err)
		return
	}

	in := service.ClickInput{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referer:   c.Request.Referer(),
	}
	if c.Request.ContentLength > 0 {
		var req TrackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Ошибка валидации"})
			return
		}
		if req.Location != nil {
			in.Location = &service.LocationInput{
				Latitude:          req.Location.Latitude,
				Longitude:         req.Location.Longitude,
				Accuracy:          req.Location.Accuracy,
				PermissionGranted: req.Location.PermissionGranted,
			}
		}
	}

	if err := h.clicks.RecordClick(c.Request.Context(), link, in); err != nil {
		h.writeLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.TrackResponse{Status: "tracked"})
}

// Get godoc
//
//	@Summary		Карточка ссылки
//	@Description	Возвращает ссылку по коду, включая истёкшие
//	@Tags			links
//	@Produce		json
//	@Param			code	path		string						true	"Короткий код"
//	@Success		200		{object}	response.ShortLinkResponse	"Найденная ссылка"
//	@Failure		404		{object}	response.ErrorResponse		"Ссылка не найдена"
//	@Router			/api/v1/links/{code} [get]
func (h *LinkHandler) Get(c *gin.Context) {
	link, err := h.links.GetByCode(c.Param("code"))
	if err != nil {
		h.writeLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(link))
}

// Stats godoc
//
//	@Summary		Статистика переходов
//	@Description	Счётчик, уникальные IP, разбивка по дням и последние клики в окне хранения
//	@Tags			links
//	@Produce		json
//	@Param			code	path		string					true	"Короткий код"
//	@Success		200		{object}	response.StatsResponse	"Статистика ссылки"
//	@Failure		404		{object}	response.ErrorResponse	"Ссылка не найдена"
//	@Failure		500		{object}	response.ErrorResponse	"Ошибка сервера"
//	@Router			/api/v1/links/{code}/stats [get]
func (h *LinkHandler) Stats(c *gin.Context) {
	link, err := h.links.GetByCode(c.Param("code"))
	if err != nil {
		h.writeLookupError(c, err)
		return
	}

	stats, err := h.clicks.GetStats(link)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Ошибка сервера"})
		return
	}

	resp := response.StatsResponse{
		Code:          link.Code,
		TotalClicks:   stats.Total,
		LastClickedAt: stats.LastClickedAt,
		UniqueIPCount: stats.UniqueIPCount,
		DailyStats:    stats.DailyStats,
		RecentClicks:  make([]response.ClickResponse, 0, len(stats.Recent)),
	}
	for _, click := range stats.Recent {
		cr := response.ClickResponse{
			ClickedAt: click.ClickedAt,
			UserAgent: click.UserAgent,
			Referer:   click.Referer,
			IP:        click.IP,
		}
		if click.PermissionGranted && click.Latitude != nil && click.Longitude != nil {
			cr.Location = &response.LocationResponse{
				Latitude:  *click.Latitude,
				Longitude: *click.Longitude,
			}
			if click.Accuracy != nil {
				cr.Location.Accuracy = *click.Accuracy
			}
		}
		resp.RecentClicks = append(resp.RecentClicks, cr)
	}

	c.JSON(http.StatusOK, resp)
}

type UpdateLinkRequest struct {
	URL         *string `json:"url" binding:"omitempty,url"`
	ExpiresIn   *string `json:"expires_in"`
	NeverExpire bool    `json:"never_expire"`
}

// Update godoc
//
//	@Summary		Редактирование ссылки
//	@Description	Меняет адрес назначения и/или срок жизни; истёкшие ссылки не редактируются
//	@Tags			links
//	@Accept			json
//	@Produce		json
//	@Param			code	path		string						true	"Короткий код"
//	@Param			link	body		UpdateLinkRequest			true	"Изменяемые поля"
//	@Success		200		{object}	response.ShortLinkResponse	"Обновлённая ссылка"
//	@Failure		400		{object}	response.ErrorResponse		"Ошибка валидации"
//	@Failure		404		{object}	response.ErrorResponse		"Ссылка не найдена"
//	@Failure		410		{object}	response.ErrorResponse		"Срок действия ссылки истёк"
//	@Failure		500		{object}	response.ErrorResponse		"Ошибка сервера"
//	@Router			/api/v1/links/{code} [patch]
func (h *LinkHandler) Update(c *gin.Context) {
	var req UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Ошибка валидации"})
		return
	}

	in := service.UpdateLinkInput{
		LongURL:     req.URL,
		ClearExpiry: req.NeverExpire,
	}
	if !req.NeverExpire && req.ExpiresIn != nil {
		ttl, err := time.ParseDuration(*req.ExpiresIn)
		if err != nil || ttl <= 0 {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Некорректный срок жизни ссылки"})
			return
		}
		in.ExpireAfter = &ttl
	}

	link, err := h.links.UpdateShortLink(c.Request.Context(), c.Param("code"), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLinkNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Ссылка не найдена"})
		case errors.Is(err, service.ErrLinkExpired):
			c.JSON(http.StatusGone, response.ErrorResponse{Error: "Срок действия ссылки истёк"})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Ошибка сервера"})
		}
		return
	}

	c.JSON(http.StatusOK, h.toResponse(link))
}

// Delete godoc
//
//	@Summary		Удаление ссылки
//	@Description	Удаляет ссылку вместе с её кликами; код обратно в оборот не возвращается
//	@Tags			links
//	@Produce		json
//	@Param			code	path	string	true	"Короткий код"
//	@Success		204
//	@Failure		404	{object}	response.ErrorResponse	"Ссылка не найдена"
//	@Failure		500	{object}	response.ErrorResponse	"Ошибка сервера"
//	@Router			/api/v1/links/{code} [delete]
func (h *LinkHandler) Delete(c *gin.Context) {
	if err := h.links.DeleteShortLink(c.Request.Context(), c.Param("code")); err != nil {
		switch {
		case errors.Is(err, service.ErrLinkNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Ссылка не найдена"})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Ошибка сервера"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LinkHandler) writeLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLinkNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Ссылка не найдена"})
	case errors.Is(err, service.ErrLinkExpired):
		c.JSON(http.StatusGone, response.ErrorResponse{Error: "Срок действия ссылки истёк"})
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Ошибка сервера"})
	}
}

func (h *LinkHandler) toResponse(link *models.ShortLink) response.ShortLinkResponse {
	return response.ShortLinkResponse{
		Code:          link.Code,
		ShortURL:      strings.TrimSuffix(h.cfg.Domain, "/") + "/" + link.Code,
		LongURL:       link.LongURL,
		IsCustom:      link.IsCustom,
		CreatedAt:     link.CreatedAt,
		ExpiresAt:     link.ExpiresAt,
		Clicks:        link.Clicks,
		LastClickedAt: link.LastClickedAt,
	}
}
