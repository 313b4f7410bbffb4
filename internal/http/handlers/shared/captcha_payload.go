package shared

import (
	"strings"

	"github.com/egzit/egzit/internal/service"
)

// CaptchaPayloadRequest captcha fields carried on login requests.
// Empty payloads are allowed when the scene is disabled; the service
// layer decides whether they are required.
type CaptchaPayloadRequest struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// ToServicePayload converts to the service layer payload.
func (r CaptchaPayloadRequest) ToServicePayload() service.CaptchaVerifyPayload {
	return service.CaptchaVerifyPayload{
		CaptchaID:   strings.TrimSpace(r.CaptchaID),
		CaptchaCode: strings.TrimSpace(r.CaptchaCode),
	}
}
