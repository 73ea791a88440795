package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hyperifyio/numlookup/internal/lookup"
	"github.com/hyperifyio/numlookup/internal/normalize"
)

type searchData struct {
	PhoneNumber       string   `json:"phone_number"`
	Name              string   `json:"name"`
	CNIC              string   `json:"cnic"`
	Address           string   `json:"address"`
	AssociatedNumbers []string `json:"associated_numbers"`
}

type searchResponse struct {
	Success        bool        `json:"success"`
	Data           *searchData `json:"data,omitempty"`
	Message        string      `json:"message"`
	SearchedNumber string      `json:"searched_number,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type inspectResponse struct {
	Input      string         `json:"input"`
	Normalized string         `json:"normalized"`
	Kind       normalize.Kind `json:"kind"`
	Valid      bool           `json:"valid"`
	Info       normalize.Info `json:"info"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

func newSearchData(out lookup.Outcome) *searchData {
	nums := out.Result.AssociatedNumbers
	if nums == nil {
		nums = []string{}
	}
	return &searchData{
		PhoneNumber:       out.Number,
		Name:              out.Result.Name,
		CNIC:              out.Result.IdentityNumber,
		Address:           out.Result.Address,
		AssociatedNumbers: nums,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeInternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   "Internal server error",
		Message: "An unexpected error occurred while processing your request.",
	})
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
