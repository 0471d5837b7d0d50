package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bugra455/stajuygulamasi-sub001/config"
	"github.com/bugra455/stajuygulamasi-sub001/internal/api/handler"
	"github.com/bugra455/stajuygulamasi-sub001/internal/api/middleware"
	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/jwt"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/redis"
)

// Setup gin motorunu kurar ve tüm rotaları bağlar
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Upload.MaxBytes + 1<<20)) // form metadatası için pay

	var blacklist middleware.TokenBlacklist
	if rdb != nil {
		blacklist = rdb
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// Kimlik doğrulama (oturumsuz)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Şirket yetkilisi OTP uçları (oturumsuz, sıkı sınır)
		sirket := v1.Group("/sirket")
		sirket.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			sirket.POST("/giris", h.Sirket.Giris)
			sirket.POST("/karar", h.Sirket.Karar)
		}

		// Oturum gerektiren rotalar
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// Kayıt detayları; erişim denetimi servis katmanında
			authorized.GET("/basvurular/:id", h.Basvuru.Get)
			authorized.GET("/muafiyetler/:id", h.Muafiyet.Get)
			authorized.GET("/defterler/:id", h.Defter.Get)
			authorized.GET("/dosyalar/*yol", h.Dosya.Indir)

			// Öğrenci
			ogrenci := authorized.Group("/ogrenci", middleware.RoleAuth(model.RolOgrenci))
			{
				ogrenci.GET("/cap", h.Kullanici.ListCap)

				ogrenci.POST("/basvurular", h.Basvuru.Create)
				ogrenci.GET("/basvurular", h.Basvuru.ListMine)
				ogrenci.POST("/basvurular/:id/iptal", h.Basvuru.Iptal)
				ogrenci.PUT("/basvurular/:id/tarih", h.Basvuru.TarihDuzelt)
				ogrenci.POST("/basvurular/:id/defter", h.Defter.Yukle)
				ogrenci.GET("/basvurular/:id/defter", h.Defter.GetByBasvuru)

				ogrenci.POST("/muafiyetler", h.Muafiyet.Create)
				ogrenci.GET("/muafiyetler", h.Muafiyet.ListMine)
				ogrenci.POST("/muafiyetler/:id/iptal", h.Muafiyet.Iptal)
			}

			// Danışman
			danisman := authorized.Group("/danisman", middleware.RoleAuth(model.RolDanisman))
			{
				danisman.GET("/basvurular", h.Basvuru.ListDanisman)
				danisman.POST("/basvurular/:id/karar", h.Basvuru.DanismanKarar)

				danisman.GET("/muafiyetler", h.Muafiyet.ListDanisman)
				danisman.POST("/muafiyetler/:id/karar", h.Muafiyet.Karar)

				danisman.GET("/defterler", h.Defter.ListDanisman)
				danisman.POST("/defterler/:id/karar", h.Defter.DanismanKarar)

				danisman.GET("/takvim.ics", h.Rapor.Takvim)
			}

			// Kariyer merkezi
			kariyer := authorized.Group("/kariyer-merkezi", middleware.RoleAuth(model.RolKariyerMerkezi))
			{
				kariyer.GET("/basvurular", h.Basvuru.ListKariyerMerkezi)
				kariyer.POST("/basvurular/:id/karar", h.Basvuru.KariyerMerkeziKarar)
				kariyer.GET("/rapor", h.Rapor.DurumRaporu)
			}

			// Admin
			admin := authorized.Group("/admin", middleware.RoleAuth(model.RolAdmin))
			{
				admin.POST("/users", h.Kullanici.Create)
				admin.GET("/users", h.Kullanici.List)
				admin.GET("/users/:id", h.Kullanici.Get)
				admin.PUT("/users/:id", h.Kullanici.Update)
				admin.DELETE("/users/:id", h.Kullanici.Delete)

				admin.DELETE("/basvurular/:id", h.Basvuru.Delete)
				admin.DELETE("/muafiyetler/:id", h.Muafiyet.Delete)

				admin.POST("/yuklemeler", h.Yukleme.Baslat)
				admin.GET("/yuklemeler", h.Yukleme.List)
				admin.GET("/yuklemeler/izle", h.Yukleme.Izle)
				admin.GET("/yuklemeler/:id", h.Yukleme.Get)
				admin.POST("/yuklemeler/:id/iptal", h.Yukleme.Iptal)

				admin.GET("/islem-kayitlari", h.Denetim.List)
			}
		}
	}

	return r
}
