package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// Supported locales. English is the fallback.
const (
	LocaleEN = "en"
	LocalePL = "pl"
)

// ResolveLocale picks the response locale from the request. The explicit
// lang query parameter wins over Accept-Language.
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return LocaleEN
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return Normalize(lang)
	}
	return Normalize(c.GetHeader("Accept-Language"))
}

// Normalize maps a locale tag to a supported locale.
func Normalize(locale string) string {
	normalized := strings.ToLower(strings.TrimSpace(locale))
	if strings.HasPrefix(normalized, "pl") {
		return LocalePL
	}
	return LocaleEN
}

// T returns the message for key in the given locale. Unknown keys are
// returned verbatim so missing entries are visible instead of silent.
func T(locale, key string) string {
	if catalog, ok := messages[Normalize(locale)]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[LocaleEN][key]; ok {
		return msg
	}
	return key
}

// Sprintf formats the message for key with args.
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

var messages = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":                  "Invalid request payload",
		"error.not_found":                    "Resource not found",
		"error.missing_fields":               "All fields are required",
		"error.email_invalid":                "Only @%s emails are accepted",
		"error.verify_code_invalid":          "Invalid or expired verification code",
		"error.verify_code_too_frequent":     "A code was sent recently, please wait before requesting another",
		"error.rate_limited":                 "You can submit at most %d song(s) per %d days. Try again later!",
		"error.vulgar_artist":                "Submission rejected: vulgar language in artist name",
		"error.vulgar_title":                 "Submission rejected: vulgar language in title",
		"error.track_not_found":              "Track not found in the catalog. Check the artist name and title.",
		"error.explicit_content":             "The track is flagged as explicit and cannot be added",
		"error.playlist_append_failed":       "Could not add the track to the playlist. Try again later.",
		"error.catalog_unavailable":          "The music catalog is unavailable. Try again later.",
		"error.internal":                     "An unexpected error occurred. Try again later.",
		"error.stats_failed":                 "Could not load statistics",
		"error.admin_list_failed":            "Could not load submissions",
		"error.captcha_required":             "Captcha is required",
		"error.captcha_invalid":              "Captcha verification failed",
		"error.captcha_generate_failed":      "Could not generate captcha",
		"error.email_service_not_configured": "Email delivery is not configured",
		"error.email_send_failed":            "Could not send the verification email. Try again later.",
		"error.invalid_credentials":          "Invalid username or password",
		"error.unauthorized":                 "Unauthorized",
		"error.auth_header_missing":          "Authorization header missing",
		"error.auth_header_invalid":          "Authorization header invalid",
		"error.token_invalid":                "Invalid or expired token",
		"error.jwt_secret_missing":           "Server auth is not configured",
		"error.rate_limit_unavailable":       "Rate limiter unavailable",
		"error.too_many_requests":            "Too many requests, try again in %d seconds",
		"verify_code.sent":                   "A verification code has been sent to %s",
		"submit.success":                     "The song has been added to the playlist!",
		"email.verify_code.subject":          "Your verification code",
		"email.verify_code.body":             "Your verification code is: %s\n\nThe code is valid for %d minutes.",
	},
	LocalePL: {
		"error.bad_request":                  "Nieprawidłowe dane żądania",
		"error.not_found":                    "Nie znaleziono zasobu",
		"error.missing_fields":               "Wszystkie pola są wymagane",
		"error.email_invalid":                "Akceptowane są tylko adresy @%s",
		"error.verify_code_invalid":          "Nieprawidłowy lub wygasły kod weryfikacyjny",
		"error.verify_code_too_frequent":     "Kod został niedawno wysłany, poczekaj chwilę przed kolejną próbą",
		"error.rate_limited":                 "Możesz zgłosić maksymalnie %d piosenkę(i) na %d dni. Spróbuj ponownie później!",
		"error.vulgar_artist":                "Zgłoszenie odrzucone: wulgaryzmy w nazwie wykonawcy",
		"error.vulgar_title":                 "Zgłoszenie odrzucone: wulgaryzmy w tytule piosenki",
		"error.track_not_found":              "Nie znaleziono utworu w katalogu. Sprawdź nazwę wykonawcy i tytuł.",
		"error.explicit_content":             "Utwór zawiera treści explicit i nie może być dodany",
		"error.playlist_append_failed":       "Błąd podczas dodawania do playlisty. Spróbuj ponownie później.",
		"error.catalog_unavailable":          "Katalog muzyczny jest niedostępny. Spróbuj ponownie później.",
		"error.internal":                     "Wystąpił nieoczekiwany błąd. Spróbuj ponownie później.",
		"error.stats_failed":                 "Błąd pobierania statystyk",
		"error.admin_list_failed":            "Błąd pobierania zgłoszeń",
		"error.captcha_required":             "Captcha jest wymagana",
		"error.captcha_invalid":              "Weryfikacja captcha nie powiodła się",
		"error.captcha_generate_failed":      "Nie udało się wygenerować captcha",
		"error.email_service_not_configured": "Wysyłka e-mail nie jest skonfigurowana",
		"error.email_send_failed":            "Nie udało się wysłać e-maila weryfikacyjnego. Spróbuj ponownie później.",
		"error.invalid_credentials":          "Nieprawidłowa nazwa użytkownika lub hasło",
		"error.unauthorized":                 "Brak autoryzacji",
		"error.auth_header_missing":          "Brak nagłówka autoryzacji",
		"error.auth_header_invalid":          "Nieprawidłowy nagłówek autoryzacji",
		"error.token_invalid":                "Nieprawidłowy lub wygasły token",
		"error.jwt_secret_missing":           "Autoryzacja serwera nie jest skonfigurowana",
		"error.rate_limit_unavailable":       "Limiter żądań jest niedostępny",
		"error.too_many_requests":            "Zbyt wiele żądań, spróbuj ponownie za %d sekund",
		"verify_code.sent":                   "Kod weryfikacyjny został wysłany na %s",
		"submit.success":                     "Piosenka została pomyślnie dodana do playlisty!",
		"email.verify_code.subject":          "Twój kod weryfikacyjny",
		"email.verify_code.body":             "Twój kod weryfikacyjny: %s\n\nKod jest ważny przez %d minut.",
	},
}
