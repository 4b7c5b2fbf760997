package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aeiou-exam/backend/auth"
	"github.com/aeiou-exam/backend/httpjson"
	"github.com/aeiou-exam/backend/userdetail"
	"github.com/go-chi/httplog/v2"
)

type DetailResponse struct {
	UserID               string    `json:"userId"`
	Fullname             string    `json:"fullname"`
	Age                  int       `json:"age"`
	Gender               string    `json:"gender"`
	MotherTongue         []string  `json:"motherTongue"`
	LanguagesKnown       []string  `json:"languagesKnown"`
	HighestQualification string    `json:"highestQualification"`
	Section              string    `json:"section,omitempty"`
	Residence            string    `json:"residence"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func mapDetail(d *userdetail.Detail) DetailResponse {
	return DetailResponse{
		UserID:               d.UserID,
		Fullname:             d.Fullname,
		Age:                  d.Age,
		Gender:               d.Gender,
		MotherTongue:         d.MotherTongue,
		LanguagesKnown:       d.LanguagesKnown,
		HighestQualification: d.HighestQualification,
		Section:              d.Section,
		Residence:            d.Residence,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

type detailRequest struct {
	Fullname             string   `json:"fullname" validate:"required"`
	Age                  int      `json:"age" validate:"required,gt=0"`
	Gender               string   `json:"gender" validate:"required"`
	MotherTongue         []string `json:"motherTongue"`
	LanguagesKnown       []string `json:"languagesKnown"`
	HighestQualification string   `json:"highestQualification" validate:"required"`
	Section              string   `json:"section"`
	Residence            string   `json:"residence" validate:"required"`
}

func (httpserver *HttpServer) decodeDetailRequest(w http.ResponseWriter, r *http.Request) (*userdetail.DetailParams, bool) {
	var request detailRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.WriteErrorJson(w, "invalid request body", http.StatusBadRequest, "bad_request")
		return nil, false
	}
	if err := httpserver.validate.Struct(request); err != nil {
		httpjson.WriteErrorJson(w, err.Error(), http.StatusBadRequest, "validation_failed")
		return nil, false
	}
	return &userdetail.DetailParams{
		Fullname:             request.Fullname,
		Age:                  request.Age,
		Gender:               request.Gender,
		MotherTongue:         request.MotherTongue,
		LanguagesKnown:       request.LanguagesKnown,
		HighestQualification: request.HighestQualification,
		Section:              request.Section,
		Residence:            request.Residence,
	}, true
}

func (httpserver *HttpServer) createProfileDetail(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())
	claims := auth.ClaimsFromContext(r.Context())

	params, ok := httpserver.decodeDetailRequest(w, r)
	if !ok {
		return
	}

	created, err := httpserver.detailSrvc.CreateDetail(r.Context(), claims.Subject, *params)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteCreatedJson(w, mapDetail(created))
}

func (httpserver *HttpServer) updateProfileDetail(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())
	claims := auth.ClaimsFromContext(r.Context())

	params, ok := httpserver.decodeDetailRequest(w, r)
	if !ok {
		return
	}

	updated, err := httpserver.detailSrvc.UpdateDetail(r.Context(), claims.Subject, *params)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapDetail(updated))
}

func (httpserver *HttpServer) getProfileDetail(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())
	claims := auth.ClaimsFromContext(r.Context())

	detail, err := httpserver.detailSrvc.GetDetail(r.Context(), claims.Subject)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapDetail(detail))
}

func (httpserver *HttpServer) listProfileDetails(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	details, err := httpserver.detailSrvc.ListDetails(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	response := make([]DetailResponse, 0, len(details))
	for _, d := range details {
		response = append(response, mapDetail(d))
	}
	httpjson.WriteSuccessJson(w, response)
}
