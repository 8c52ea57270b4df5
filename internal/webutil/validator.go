package webutil

import (
	"errors"
	"log"
	"reflect"
	"strings"

	"algo_review_keep/internal/model"

	"github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja"
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"problem_id":          "問題番号",
	"title":               "タイトル",
	"title_slug":          "slug",
	"difficulty":          "難易度",
	"topic":               "トピック",
	"time_spent":          "所要時間",
	"personal_difficulty": "体感難易度",
	"notes":               "メモ",
	"solution":            "解答",
	"language":            "言語",
}

func translatedField(fe validator.FieldError) string {
	if name, ok := fieldNameTranslations[fe.Field()]; ok {
		return name
	}
	return fe.Field()
}

func init() {
	Validator = validator.New()

	// JSONタグからフィールド名を取得する
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}
	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	registerTranslation := func(tag, msg string, withParam bool) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			if withParam {
				t, _ := ut.T(tag, translatedField(fe), fe.Param())
				return t
			}
			t, _ := ut.T(tag, translatedField(fe))
			return t
		})
	}

	registerTranslation("required", "{0}は必須項目です。", false)
	registerTranslation("gt", "{0}は{1}より大きい値を指定してください。", true)
	// 数値と文字列の両方に使うため単位は付けない
	registerTranslation("min", "{0}は{1}以上で指定してください。", true)
	registerTranslation("max", "{0}は{1}以下で指定してください。", true)
}

// ValidateStruct は構造体を検証し、最初のエラーを翻訳済みの AppError で返します
func ValidateStruct(v interface{}) error {
	err := Validator.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	first := validationErrors[0]
	return model.NewAppError("VALIDATION_ERROR", first.Translate(Trans), first.Field(), model.ErrInvalidInput)
}
