package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
	"github.com/bugra455/stajuygulamasi-sub001/internal/repository"
	pkgerrors "github.com/bugra455/stajuygulamasi-sub001/pkg/errors"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/redis"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/ws"
)

// Bellek içi sahte repository'ler; testler gerçek veritabanına dokunmaz.

func yeniTestRepo() *repository.Repository {
	basvuru := &mockBasvuruRepo{kayitlar: map[string]*model.StajBasvurusu{}}
	return &repository.Repository{
		Kullanici:  &mockKullaniciRepo{kayitlar: map[string]*model.Kullanici{}},
		Cap:        &mockCapRepo{kayitlar: map[string]*model.CapUser{}},
		Basvuru:    basvuru,
		Muafiyet:   &mockMuafiyetRepo{kayitlar: map[string]*model.MuafiyetBasvurusu{}},
		Defter:     &mockDefterRepo{kayitlar: map[string]*model.StajDefteri{}, basvuru: basvuru},
		IslemKaydi: &mockIslemKaydiRepo{},
		Yukleme:    &mockYuklemeRepo{kayitlar: map[string]*model.YuklemeIsi{}},
	}
}

var idSayac int

func yeniID() string {
	idSayac++
	return fmt.Sprintf("id-%04d", idSayac)
}

// ── Kullanıcı ──

type mockKullaniciRepo struct {
	mu       sync.Mutex
	kayitlar map[string]*model.Kullanici
}

func (r *mockKullaniciRepo) Create(_ context.Context, k *model.Kullanici) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if k.KullaniciID == "" {
		k.KullaniciID = yeniID()
	}
	kopya := *k
	r.kayitlar[k.KullaniciID] = &kopya
	return nil
}

func (r *mockKullaniciRepo) GetByID(_ context.Context, id string) (*model.Kullanici, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k, ok := r.kayitlar[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	kopya := *k
	return &kopya, nil
}

func (r *mockKullaniciRepo) GetByKullaniciAdi(_ context.Context, ad string) (*model.Kullanici, error) {
	return r.bul(func(k *model.Kullanici) bool { return k.KullaniciAdi == ad })
}

func (r *mockKullaniciRepo) GetByEposta(_ context.Context, eposta string) (*model.Kullanici, error) {
	return r.bul(func(k *model.Kullanici) bool { return k.Eposta == eposta })
}

func (r *mockKullaniciRepo) GetByTCKimlikNo(_ context.Context, tc string) (*model.Kullanici, error) {
	return r.bul(func(k *model.Kullanici) bool { return k.TCKimlikNo == tc })
}

func (r *mockKullaniciRepo) Update(_ context.Context, k *model.Kullanici) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.kayitlar[k.KullaniciID]; !ok {
		return gorm.ErrRecordNotFound
	}
	kopya := *k
	r.kayitlar[k.KullaniciID] = &kopya
	return nil
}

func (r *mockKullaniciRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.kayitlar, id)
	return nil
}

func (r *mockKullaniciRepo) List(_ context.Context, rol, keyword string, offset, limit int) ([]model.Kullanici, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sonuc []model.Kullanici
	for _, k := range r.kayitlar {
		if rol != "" && k.Rol != rol {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(k.AdSoyad), strings.ToLower(keyword)) {
			continue
		}
		sonuc = append(sonuc, *k)
	}
	return dilimle(sonuc, offset, limit), int64(len(sonuc)), nil
}

func (r *mockKullaniciRepo) bul(uygun func(*model.Kullanici) bool) (*model.Kullanici, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range r.kayitlar {
		if uygun(k) {
			kopya := *k
			return &kopya, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── ÇAP ──

type mockCapRepo struct {
	mu       sync.Mutex
	kayitlar map[string]*model.CapUser
}

func (r *mockCapRepo) Create(_ context.Context, c *model.CapUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.CapID == "" {
		c.CapID = yeniID()
	}
	kopya := *c
	r.kayitlar[c.CapID] = &kopya
	return nil
}

func (r *mockCapRepo) GetByID(_ context.Context, id string) (*model.CapUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.kayitlar[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	kopya := *c
	return &kopya, nil
}

func (r *mockCapRepo) GetByIDForOgrenci(_ context.Context, id, ogrenciID string) (*model.CapUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.kayitlar[id]
	if !ok || c.OgrenciID != ogrenciID {
		return nil, gorm.ErrRecordNotFound
	}
	kopya := *c
	return &kopya, nil
}

func (r *mockCapRepo) ListByOgrenci(_ context.Context, ogrenciID string) ([]model.CapUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sonuc []model.CapUser
	for _, c := range r.kayitlar {
		if c.OgrenciID == ogrenciID {
			sonuc = append(sonuc, *c)
		}
	}
	return sonuc, nil
}

func (r *mockCapRepo) Update(_ context.Context, c *model.CapUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kopya := *c
	r.kayitlar[c.CapID] = &kopya
	return nil
}

func (r *mockCapRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.kayitlar, id)
	return nil
}

// ── Staj başvurusu ──

type mockBasvuruRepo struct {
	mu       sync.Mutex
	kayitlar map[string]*model.StajBasvurusu
	loglar   []model.IslemKaydi
}

func (r *mockBasvuruRepo) CreateWithLog(_ context.Context, b *model.StajBasvurusu, kayit *model.IslemKaydi) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.BasvuruID == "" {
		b.BasvuruID = yeniID()
	}
	b.CreatedAt = time.Now()
	kopya := *b
	r.kayitlar[b.BasvuruID] = &kopya
	kayit.HedefID = &b.BasvuruID
	r.loglar = append(r.loglar, *kayit)
	return nil
}

func (r *mockBasvuruRepo) GetByID(_ context.Context, id string) (*model.StajBasvurusu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.kayitlar[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	kopya := *b
	return &kopya, nil
}

func (r *mockBasvuruRepo) UpdateWithLog(_ context.Context, b *model.StajBasvurusu, kayit *model.IslemKaydi) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	mevcut, ok := r.kayitlar[b.BasvuruID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if mevcut.Version != b.Version {
		return pkgerrors.ErrOptimisticLock
	}
	b.Version++
	kopya := *b
	r.kayitlar[b.BasvuruID] = &kopya
	kayit.HedefID = &b.BasvuruID
	r.loglar = append(r.loglar, *kayit)
	return nil
}

func (r *mockBasvuruRepo) Update(_ context.Context, b *model.StajBasvurusu) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kopya := *b
	r.kayitlar[b.BasvuruID] = &kopya
	return nil
}

func (r *mockBasvuruRepo) ListByOgrenci(_ context.Context, ogrenciID string, offset, limit int) ([]model.StajBasvurusu, int64, error) {
	return r.listele(func(b *model.StajBasvurusu) bool { return b.OgrenciID == ogrenciID }, offset, limit)
}

func (r *mockBasvuruRepo) ListByDurum(_ context.Context, durum string, offset, limit int) ([]model.StajBasvurusu, int64, error) {
	return r.listele(func(b *model.StajBasvurusu) bool {
		return durum == "" || b.OnayDurumu == durum
	}, offset, limit)
}

func (r *mockBasvuruRepo) ListByDanismanEposta(_ context.Context, eposta, durum string, offset, limit int) ([]model.StajBasvurusu, int64, error) {
	return r.listele(func(b *model.StajBasvurusu) bool {
		return b.DanismanEposta == eposta && (durum == "" || b.OnayDurumu == durum)
	}, offset, limit)
}

func (r *mockBasvuruRepo) ListOnaylananByDanismanEposta(_ context.Context, eposta string) ([]model.StajBasvurusu, error) {
	sonuc, _, err := r.listele(func(b *model.StajBasvurusu) bool {
		return b.DanismanEposta == eposta && b.OnayDurumu == model.DurumOnaylandi
	}, 0, len(r.kayitlar))
	return sonuc, err
}

func (r *mockBasvuruRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.kayitlar, id)
	return nil
}

func (r *mockBasvuruRepo) listele(uygun func(*model.StajBasvurusu) bool, offset, limit int) ([]model.StajBasvurusu, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sonuc []model.StajBasvurusu
	for _, b := range r.kayitlar {
		if uygun(b) {
			sonuc = append(sonuc, *b)
		}
	}
	return dilimle(sonuc, offset, limit), int64(len(sonuc)), nil
}

// ── Muafiyet ──

type mockMuafiyetRepo struct {
	mu       sync.Mutex
	kayitlar map[string]*model.MuafiyetBasvurusu
}

func (r *mockMuafiyetRepo) CreateWithLog(_ context.Context, m *model.MuafiyetBasvurusu, kayit *model.IslemKaydi) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.MuafiyetID == "" {
		m.MuafiyetID = yeniID()
	}
	m.CreatedAt = time.Now()
	kopya := *m
	r.kayitlar[m.MuafiyetID] = &kopya
	kayit.HedefID = &m.MuafiyetID
	return nil
}

func (r *mockMuafiyetRepo) GetByID(_ context.Context, id string) (*model.MuafiyetBasvurusu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.kayitlar[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	kopya := *m
	return &kopya, nil
}

func (r *mockMuafiyetRepo) Update(_ context.Context, m *model.MuafiyetBasvurusu) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kopya := *m
	r.kayitlar[m.MuafiyetID] = &kopya
	return nil
}

func (r *mockMuafiyetRepo) ListByOgrenci(_ context.Context, ogrenciID string, offset, limit int) ([]model.MuafiyetBasvurusu, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sonuc []model.MuafiyetBasvurusu
	for _, m := range r.kayitlar {
		if m.OgrenciID == ogrenciID {
			sonuc = append(sonuc, *m)
		}
	}
	return dilimle(sonuc, offset, limit), int64(len(sonuc)), nil
}

func (r *mockMuafiyetRepo) ListByDanismanEposta(_ context.Context, eposta, durum string, offset, limit int) ([]model.MuafiyetBasvurusu, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sonuc []model.MuafiyetBasvurusu
	for _, m := range r.kayitlar {
		if m.DanismanEposta == eposta && (durum == "" || m.OnayDurumu == durum) {
			sonuc = append(sonuc, *m)
		}
	}
	return dilimle(sonuc, offset, limit), int64(len(sonuc)), nil
}

func (r *mockMuafiyetRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.kayitlar, id)
	return nil
}

// ── Staj defteri ──

type mockDefterRepo struct {
	mu       sync.Mutex
	kayitlar map[string]*model.StajDefteri
	basvuru  *mockBasvuruRepo // iliskileri doldurmak icin
}

func (r *mockDefterRepo) Create(_ context.Context, d *model.StajDefteri) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.DefterID == "" {
		d.DefterID = yeniID()
	}
	d.CreatedAt = time.Now()
	kopya := *d
	r.kayitlar[d.DefterID] = &kopya
	return nil
}

func (r *mockDefterRepo) GetByID(_ context.Context, id string) (*model.StajDefteri, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.kayitlar[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	kopya := *d
	r.iliskiDoldur(&kopya)
	return &kopya, nil
}

func (r *mockDefterRepo) GetByBasvuruID(_ context.Context, basvuruID string) (*model.StajDefteri, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.kayitlar {
		if d.BasvuruID == basvuruID {
			kopya := *d
			r.iliskiDoldur(&kopya)
			return &kopya, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockDefterRepo) Update(_ context.Context, d *model.StajDefteri) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	mevcut, ok := r.kayitlar[d.DefterID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if mevcut.Version != d.Version {
		return pkgerrors.ErrOptimisticLock
	}
	d.Version++
	kopya := *d
	kopya.Basvuru = nil
	r.kayitlar[d.DefterID] = &kopya
	return nil
}

func (r *mockDefterRepo) ListByDanismanEposta(_ context.Context, eposta, durum string, offset, limit int) ([]model.StajDefteri, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sonuc []model.StajDefteri
	for _, d := range r.kayitlar {
		if durum != "" && d.Durum != durum {
			continue
		}
		kopya := *d
		r.iliskiDoldur(&kopya)
		if kopya.Basvuru != nil && kopya.Basvuru.DanismanEposta == eposta {
			sonuc = append(sonuc, kopya)
		}
	}
	return dilimle(sonuc, offset, limit), int64(len(sonuc)), nil
}

func (r *mockDefterRepo) iliskiDoldur(d *model.StajDefteri) {
	if r.basvuru == nil {
		return
	}
	if b, ok := r.basvuru.kayitlar[d.BasvuruID]; ok {
		kopya := *b
		d.Basvuru = &kopya
	}
}

// ── İşlem kaydı ──

type mockIslemKaydiRepo struct {
	mu       sync.Mutex
	kayitlar []model.IslemKaydi
}

func (r *mockIslemKaydiRepo) Create(_ context.Context, kayit *model.IslemKaydi) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if kayit.KayitID == "" {
		kayit.KayitID = yeniID()
	}
	r.kayitlar = append(r.kayitlar, *kayit)
	return nil
}

func (r *mockIslemKaydiRepo) List(_ context.Context, offset, limit int) ([]model.IslemKaydi, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return dilimle(r.kayitlar, offset, limit), int64(len(r.kayitlar)), nil
}

func (r *mockIslemKaydiRepo) ListByHedef(_ context.Context, hedefID string) ([]model.IslemKaydi, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sonuc []model.IslemKaydi
	for _, k := range r.kayitlar {
		if k.HedefID != nil && *k.HedefID == hedefID {
			sonuc = append(sonuc, k)
		}
	}
	return sonuc, nil
}

// ── Yükleme işi ──

type mockYuklemeRepo struct {
	mu       sync.Mutex
	kayitlar map[string]*model.YuklemeIsi
}

func (r *mockYuklemeRepo) Create(_ context.Context, is *model.YuklemeIsi) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if is.IsID == "" {
		is.IsID = yeniID()
	}
	is.CreatedAt = time.Now()
	kopya := *is
	r.kayitlar[is.IsID] = &kopya
	return nil
}

func (r *mockYuklemeRepo) GetByID(_ context.Context, id string) (*model.YuklemeIsi, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	is, ok := r.kayitlar[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	kopya := *is
	return &kopya, nil
}

func (r *mockYuklemeRepo) Update(_ context.Context, is *model.YuklemeIsi) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kopya := *is
	r.kayitlar[is.IsID] = &kopya
	return nil
}

func (r *mockYuklemeRepo) GetAktifByTip(_ context.Context, dosyaTipi string) (*model.YuklemeIsi, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, is := range r.kayitlar {
		if is.DosyaTipi == dosyaTipi && is.Aktif() {
			kopya := *is
			return &kopya, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockYuklemeRepo) List(_ context.Context, offset, limit int) ([]model.YuklemeIsi, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sonuc []model.YuklemeIsi
	for _, is := range r.kayitlar {
		sonuc = append(sonuc, *is)
	}
	return dilimle(sonuc, offset, limit), int64(len(sonuc)), nil
}

// ── Servis bağımlılıkları ──

type mockOTPStore struct {
	mu       sync.Mutex
	kayitlar map[string]redis.OTPRecord
}

func yeniMockOTPStore() *mockOTPStore {
	return &mockOTPStore{kayitlar: map[string]redis.OTPRecord{}}
}

func (s *mockOTPStore) SetCompanyOTP(_ context.Context, email string, rec redis.OTPRecord, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kayitlar[strings.ToLower(email)] = rec
	return nil
}

func (s *mockOTPStore) GetCompanyOTP(_ context.Context, email string) (*redis.OTPRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.kayitlar[strings.ToLower(email)]
	if !ok {
		return nil, goredis.Nil
	}
	kopya := rec
	return &kopya, nil
}

func (s *mockOTPStore) DeleteCompanyOTP(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.kayitlar, strings.ToLower(email))
	return nil
}

type mockMailer struct {
	mu         sync.Mutex
	gonderilen []string // "alıcı|konu" biçiminde
	hata       error
}

func (m *mockMailer) Send(to, subject, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hata != nil {
		return m.hata
	}
	m.gonderilen = append(m.gonderilen, to+"|"+subject)
	return nil
}

type mockNotifier struct {
	mu       sync.Mutex
	mesajlar []ws.Message
}

func (n *mockNotifier) Broadcast(msg ws.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.mesajlar = append(n.mesajlar, msg)
}

func dilimle[T any](s []T, offset, limit int) []T {
	if offset >= len(s) {
		return nil
	}
	s = s[offset:]
	if limit > 0 && limit < len(s) {
		s = s[:limit]
	}
	return s
}
