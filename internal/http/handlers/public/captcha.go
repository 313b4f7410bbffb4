package public

import (
	"github.com/egzit/egzit/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptchaSetting exposes which scenes require a captcha so the
// frontend knows whether to fetch a challenge before submitting.
func (h *Handler) GetCaptchaSetting(c *gin.Context) {
	if h.CaptchaService == nil {
		response.Success(c, gin.H{"provider": "none"})
		return
	}
	response.Success(c, h.CaptchaService.PublicSetting())
}

// GetImageCaptcha issues a fresh image challenge.
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if h.CaptchaService == nil {
		respondError(c, response.CodeInternal, "captcha is not configured", nil)
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to generate captcha", err)
		return
	}
	response.Success(c, challenge)
}
