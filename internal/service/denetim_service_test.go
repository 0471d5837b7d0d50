package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/bugra455/stajuygulamasi-sub001/internal/dto"
	"github.com/bugra455/stajuygulamasi-sub001/internal/model"
)

func TestDenetimList(t *testing.T) {
	repo := yeniTestRepo()
	ctx := context.Background()

	hedef := "basvuru-42"
	kayitlar := []model.IslemKaydi{
		{IslemTipi: model.IslemOlusturma, KayitTipi: model.KayitStajBasvurusu, HedefID: &hedef},
		{IslemTipi: model.IslemOnay, KayitTipi: model.KayitStajBasvurusu, HedefID: &hedef, Aciklama: "danışman onayı"},
		{IslemTipi: model.IslemIptal, KayitTipi: model.KayitMuafiyet},
	}
	for i := range kayitlar {
		if err := repo.IslemKaydi.Create(ctx, &kayitlar[i]); err != nil {
			t.Fatal(err)
		}
	}

	svc := NewDenetimService(repo, zap.NewNop())

	liste, total, err := svc.List(ctx, &dto.PaginationRequest{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("denetim günlüğü listelenemedi: %v", err)
	}
	if total != 3 {
		t.Errorf("toplam 3 bekleniyordu, gelen: %d", total)
	}
	if len(liste) != 2 {
		t.Errorf("sayfa boyutu 2 bekleniyordu, gelen: %d", len(liste))
	}

	hedefli, err := svc.ListByHedef(ctx, hedef)
	if err != nil {
		t.Fatalf("hedefe göre listeleme başarısız: %v", err)
	}
	if len(hedefli) != 2 {
		t.Fatalf("hedef için 2 kayıt bekleniyordu, gelen: %d", len(hedefli))
	}
	if hedefli[1].Aciklama != "danışman onayı" {
		t.Errorf("açıklama taşınmalı, gelen: %q", hedefli[1].Aciklama)
	}

	bos, err := svc.ListByHedef(ctx, "olmayan-id")
	if err != nil || len(bos) != 0 {
		t.Errorf("bilinmeyen hedef için boş liste beklenirdi: %v, %d", err, len(bos))
	}
}
