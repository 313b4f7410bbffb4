package service

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/egzit/egzit/internal/config"
	"github.com/egzit/egzit/internal/constants"

	"github.com/mojocn/base64Captcha"
)

// ErrCaptchaConfigInvalid captcha provider misconfigured
var ErrCaptchaConfigInvalid = errors.New("captcha configuration invalid")

// CaptchaVerifyPayload captcha verification payload
type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// CaptchaImageChallenge an image captcha challenge
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService config-driven captcha: per-scene switches decide
// whether a challenge is required, the image provider backs the only
// supported challenge type.
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu         sync.Mutex
	imageStore base64Captcha.Store
}

// NewCaptchaService creates a captcha service
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: normalizeCaptchaConfig(cfg)}
}

func normalizeCaptchaConfig(cfg config.CaptchaConfig) config.CaptchaConfig {
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Provider == "" {
		cfg.Provider = constants.CaptchaProviderNone
	}
	if cfg.Image.Length <= 0 || cfg.Image.Length > 10 {
		cfg.Image.Length = 5
	}
	if cfg.Image.Width <= 0 {
		cfg.Image.Width = 240
	}
	if cfg.Image.Height <= 0 {
		cfg.Image.Height = 80
	}
	if cfg.Image.ExpireSeconds <= 0 {
		cfg.Image.ExpireSeconds = 300
	}
	if cfg.Image.MaxStore <= 0 {
		cfg.Image.MaxStore = 10240
	}
	return cfg
}

// SceneEnabled reports whether a scene requires a captcha
func (s *CaptchaService) SceneEnabled(scene string) bool {
	if s == nil || s.cfg.Provider == constants.CaptchaProviderNone {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(scene)) {
	case constants.CaptchaSceneLogin:
		return s.cfg.Scenes.Login
	case constants.CaptchaSceneAdminLogin:
		return s.cfg.Scenes.AdminLogin
	default:
		return false
	}
}

// PublicSetting returns the client-visible captcha configuration
func (s *CaptchaService) PublicSetting() map[string]interface{} {
	return map[string]interface{}{
		"provider": s.cfg.Provider,
		"scenes": map[string]bool{
			constants.CaptchaSceneLogin:      s.cfg.Scenes.Login,
			constants.CaptchaSceneAdminLogin: s.cfg.Scenes.AdminLogin,
		},
	}
}

// GenerateImageChallenge generates an image captcha
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	if s.cfg.Provider != constants.CaptchaProviderImage {
		return nil, ErrCaptchaConfigInvalid
	}

	driver := base64Captcha.NewDriverString(
		s.cfg.Image.Height,
		s.cfg.Image.Width,
		s.cfg.Image.NoiseCount,
		s.cfg.Image.ShowLine,
		s.cfg.Image.Length,
		"0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.ensureImageStore())
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}

	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify checks a captcha for a scene. Scenes with the captcha switched
// off verify trivially.
func (s *CaptchaService) Verify(scene string, payload CaptchaVerifyPayload) error {
	if !s.SceneEnabled(scene) {
		return nil
	}

	switch s.cfg.Provider {
	case constants.CaptchaProviderImage:
		captchaID := strings.TrimSpace(payload.CaptchaID)
		captchaCode := strings.TrimSpace(payload.CaptchaCode)
		if captchaID == "" || captchaCode == "" {
			return ErrCaptchaRequired
		}
		if !s.ensureImageStore().Verify(captchaID, captchaCode, true) {
			return ErrCaptchaInvalid
		}
		return nil
	default:
		return ErrCaptchaConfigInvalid
	}
}

func (s *CaptchaService) ensureImageStore() base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.imageStore == nil {
		s.imageStore = base64Captcha.NewMemoryStore(s.cfg.Image.MaxStore, time.Duration(s.cfg.Image.ExpireSeconds)*time.Second)
	}
	return s.imageStore
}
