package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bugra455/stajuygulamasi-sub001/config"
	"github.com/bugra455/stajuygulamasi-sub001/internal/dto"
	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
	"github.com/bugra455/stajuygulamasi-sub001/internal/service"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	meResult      *dto.UserResponse
	meErr         error
	changePassErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}

// ── Mock SirketService ──

type mockSirketService struct {
	girisResult *dto.SirketGirisResponse
	girisErr    error
	kararResult *dto.SirketGirisResponse
	kararErr    error
}

func (m *mockSirketService) Giris(_ context.Context, _ *dto.SirketGirisRequest) (*dto.SirketGirisResponse, error) {
	return m.girisResult, m.girisErr
}
func (m *mockSirketService) Karar(_ context.Context, _ *dto.SirketKararRequest) (*dto.SirketGirisResponse, error) {
	return m.kararResult, m.kararErr
}

// ── Mock BasvuruService ──

type mockBasvuruService struct {
	result    *dto.BasvuruResponse
	err       error
	list      []dto.BasvuruResponse
	listTotal int64
	listErr   error
}

func (m *mockBasvuruService) Create(_ context.Context, _ string, _ *dto.CreateBasvuruRequest, _ service.BasvuruDosyalari) (*dto.BasvuruResponse, error) {
	return m.result, m.err
}
func (m *mockBasvuruService) GetByID(_ context.Context, _, _, _ string) (*dto.BasvuruResponse, error) {
	return m.result, m.err
}
func (m *mockBasvuruService) ListByOgrenci(_ context.Context, _ string, _ *dto.BasvuruListRequest) ([]dto.BasvuruResponse, int64, error) {
	return m.list, m.listTotal, m.listErr
}
func (m *mockBasvuruService) ListForDanisman(_ context.Context, _ string, _ *dto.BasvuruListRequest) ([]dto.BasvuruResponse, int64, error) {
	return m.list, m.listTotal, m.listErr
}
func (m *mockBasvuruService) ListForKariyerMerkezi(_ context.Context, _ *dto.BasvuruListRequest) ([]dto.BasvuruResponse, int64, error) {
	return m.list, m.listTotal, m.listErr
}
func (m *mockBasvuruService) DanismanKarar(_ context.Context, _, _ string, _ *dto.KararRequest) (*dto.BasvuruResponse, error) {
	return m.result, m.err
}
func (m *mockBasvuruService) KariyerMerkeziKarar(_ context.Context, _, _ string, _ *dto.KararRequest) (*dto.BasvuruResponse, error) {
	return m.result, m.err
}
func (m *mockBasvuruService) Iptal(_ context.Context, _, _, _ string) (*dto.BasvuruResponse, error) {
	return m.result, m.err
}
func (m *mockBasvuruService) TarihDuzelt(_ context.Context, _, _ string, _ *dto.TarihDuzeltmeRequest) (*dto.BasvuruResponse, error) {
	return m.result, m.err
}
func (m *mockBasvuruService) Delete(_ context.Context, _ string) error {
	return m.err
}

// ── Mock KullaniciService ──

type mockKullaniciService struct {
	createResult *dto.CreateUserResponse
	createErr    error
	getResult    *dto.UserResponse
	getErr       error
	deleteErr    error
}

func (m *mockKullaniciService) Create(_ context.Context, _ *dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockKullaniciService) GetByID(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockKullaniciService) List(_ context.Context, _ *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	return nil, 0, nil
}
func (m *mockKullaniciService) Update(_ context.Context, _ string, _ *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockKullaniciService) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}
func (m *mockKullaniciService) ListCap(_ context.Context, _ string) ([]dto.CapResponse, error) {
	return nil, nil
}

// ── Yardımcılar ──

func testUploadConfig() *config.Config {
	return &config.Config{
		Upload: config.UploadConfig{
			Dir:               "testdata-uploads",
			MaxBytes:          10 << 20,
			AllowedExtensions: []string{".pdf", ".xlsx"},
		},
	}
}

func jsonIstek(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func oturumlu(userID, rol string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", rol)
		c.Next()
	}
}

func govdeCoz(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("yanıt gövdesi çözülemedi: %v", err)
	}
	return resp
}

// ── Testler ──

func TestLoginHandler(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{AccessToken: "at", RefreshToken: "rt"},
	}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/login", h.Login)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonIstek(http.MethodPost, "/login", dto.LoginRequest{Kimlik: "mehmet", Sifre: "sifre"}))

	if w.Code != http.StatusOK {
		t.Fatalf("200 bekleniyordu, gelen: %d", w.Code)
	}
	resp := govdeCoz(t, w)
	if resp.Code != 0 {
		t.Errorf("başarı kodu 0 bekleniyordu, gelen: %d", resp.Code)
	}
}

func TestLoginHandlerHataliKimlik(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrGecersizKimlik}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/login", h.Login)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonIstek(http.MethodPost, "/login", dto.LoginRequest{Kimlik: "mehmet", Sifre: "yanlis"}))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("401 bekleniyordu, gelen: %d", w.Code)
	}
}

func TestLoginHandlerEksikGovde(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/login", h.Login)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonIstek(http.MethodPost, "/login", map[string]string{"kimlik": "mehmet"}))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("400 bekleniyordu, gelen: %d", w.Code)
	}
}

func TestSirketKararHataEslemesi(t *testing.T) {
	durumlar := []struct {
		ad     string
		hata   error
		status int
	}{
		{"gecersiz kod", service.ErrGecersizKod, http.StatusUnauthorized},
		{"otp kapali", service.ErrOTPDevreDisi, http.StatusServiceUnavailable},
		{"sebepsiz red", service.ErrRedSebebiZorunlu, http.StatusBadRequest},
		{"cifte karar", model.ErrGecersizGecis, http.StatusForbidden},
	}

	for _, d := range durumlar {
		t.Run(d.ad, func(t *testing.T) {
			h := NewSirketHandler(&mockSirketService{kararErr: d.hata})

			r := gin.New()
			r.POST("/karar", h.Karar)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, jsonIstek(http.MethodPost, "/karar", dto.SirketKararRequest{
				Eposta: "yetkili@kurum.com", Kod: "123456", Karar: model.KararOnay,
			}))

			if w.Code != d.status {
				t.Errorf("%d bekleniyordu, gelen: %d", d.status, w.Code)
			}
		})
	}
}

func TestBasvuruKararHandler(t *testing.T) {
	mock := &mockBasvuruService{result: &dto.BasvuruResponse{BasvuruID: "b1", OnayDurumu: model.DurumKariyerMerkeziOnayiBekliyor}}
	h := NewBasvuruHandler(testUploadConfig(), mock)

	r := gin.New()
	r.POST("/basvurular/:id/karar", oturumlu("danisman-1", model.RolDanisman), h.DanismanKarar)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonIstek(http.MethodPost, "/basvurular/b1/karar", dto.KararRequest{Karar: model.KararOnay}))

	if w.Code != http.StatusOK {
		t.Fatalf("200 bekleniyordu, gelen: %d", w.Code)
	}
}

func TestBasvuruKararYetkiHatasi(t *testing.T) {
	mock := &mockBasvuruService{err: service.ErrBasvuruYetkisiz}
	h := NewBasvuruHandler(testUploadConfig(), mock)

	r := gin.New()
	r.POST("/basvurular/:id/karar", oturumlu("danisman-2", model.RolDanisman), h.DanismanKarar)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonIstek(http.MethodPost, "/basvurular/b1/karar", dto.KararRequest{Karar: model.KararOnay}))

	if w.Code != http.StatusForbidden {
		t.Fatalf("403 bekleniyordu, gelen: %d", w.Code)
	}
}

func TestBasvuruIptalOnaylanmisYasak(t *testing.T) {
	// Onaylanmış başvuruda iptal girişimi durum uyuşmazlığıdır
	mock := &mockBasvuruService{err: model.ErrGecersizGecis}
	h := NewBasvuruHandler(testUploadConfig(), mock)

	r := gin.New()
	r.POST("/basvurular/:id/iptal", oturumlu("ogrenci-1", model.RolOgrenci), h.Iptal)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonIstek(http.MethodPost, "/basvurular/b1/iptal", dto.IptalRequest{Sebep: "vazgeçtim"}))

	if w.Code != http.StatusForbidden {
		t.Fatalf("403 bekleniyordu, gelen: %d", w.Code)
	}
}

func TestBasvuruKararOturumsuz(t *testing.T) {
	h := NewBasvuruHandler(testUploadConfig(), &mockBasvuruService{})

	r := gin.New()
	r.POST("/basvurular/:id/karar", h.DanismanKarar)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonIstek(http.MethodPost, "/basvurular/b1/karar", dto.KararRequest{Karar: model.KararOnay}))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("401 bekleniyordu, gelen: %d", w.Code)
	}
}

func TestKullaniciDeleteHandler(t *testing.T) {
	t.Run("kendini silme", func(t *testing.T) {
		h := NewKullaniciHandler(&mockKullaniciService{deleteErr: service.ErrKendiniSilemez})

		r := gin.New()
		r.DELETE("/users/:id", oturumlu("admin-1", model.RolAdmin), h.Delete)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/admin-1", nil))

		if w.Code != http.StatusForbidden {
			t.Errorf("403 bekleniyordu, gelen: %d", w.Code)
		}
	})

	t.Run("basarili", func(t *testing.T) {
		h := NewKullaniciHandler(&mockKullaniciService{})

		r := gin.New()
		r.DELETE("/users/:id", oturumlu("admin-1", model.RolAdmin), h.Delete)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/ogrenci-1", nil))

		if w.Code != http.StatusOK {
			t.Errorf("200 bekleniyordu, gelen: %d", w.Code)
		}
	})
}
