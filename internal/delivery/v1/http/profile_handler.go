package http

import (
	"net/http"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/cfg"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/usecase"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
)

type ProfileHandler struct {
	profileUsecase usecase.ProfileUC
	site           *cfg.SiteCfg
	logger         logger.Logger
}

func NewProfileHandler(profileUsecase usecase.ProfileUC, site *cfg.SiteCfg, logger logger.Logger) *ProfileHandler {
	return &ProfileHandler{profileUsecase: profileUsecase, site: site, logger: logger}
}

// getProfile
//
//	@Summary	Профиль пользователя
//	@Tags		profile
//	@Produce	json
//	@Param		X-User-ID	header		string	true	"ID пользователя"
//	@Success	200			{object}	profileResponse
//	@Router		/profile [get]
func (p *ProfileHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := p.profileUsecase.GetProfile(r.Context(), ownerFromCtx(r.Context()))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProfileResponse(profile))
}

// updateProfile
//
//	@Summary	Изменение профиля
//	@Tags		profile
//	@Accept		json
//	@Produce	json
//	@Param		X-User-ID	header		string					true	"ID пользователя"
//	@Param		request		body		updateProfileRequest	true	"Профиль"
//	@Success	200			{object}	profileResponse
//	@Failure	400			{object}	ErrorResponse
//	@Router		/profile [patch]
func (p *ProfileHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	profile, err := p.profileUsecase.UpdateProfile(r.Context(), ownerFromCtx(r.Context()),
		usecase.NewUpdateProfileReq(req.FullName, req.TelegramChatID))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProfileResponse(profile))
}

// callbackURL
//
//	@Summary	Адрес OAuth-колбэка фронтенда
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	callbackURLResponse
//	@Failure	404	{object}	ErrorResponse	"SITE_URL не задан"
//	@Router		/auth/callback-url [get]
func (p *ProfileHandler) callbackURL(w http.ResponseWriter, r *http.Request) {
	url := p.site.CallbackURL()
	if url == "" {
		WriteError(w, e.ErrSiteURLNotSet)
		return
	}

	WriteSuccess(w, http.StatusOK, callbackURLResponse{URL: url})
}
