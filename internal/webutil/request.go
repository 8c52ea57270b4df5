package webutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"algo_review_keep/internal/model"
)

// DecodeJSONBody はリクエストボディをデコードします。未知のフィールドはエラーにします
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return fmt.Errorf("empty body: %w", model.ErrInvalidInput)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decode json: %v: %w", err, model.ErrInvalidInput)
	}
	return nil
}

// QueryInt はクエリパラメータを整数として読み取ります。未指定なら def を返します
func QueryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.NewAppError("INVALID_QUERY_PARAM", key+"は整数で指定してください。", key, model.ErrInvalidInput)
	}
	return v, nil
}
