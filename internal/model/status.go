package model

import (
	"errors"
	"time"
)

// Başvuru toplu onay durumları
const (
	DurumDanismanOnayiBekliyor       = "DANISMAN_ONAYI_BEKLIYOR"
	DurumKariyerMerkeziOnayiBekliyor = "KARIYER_MERKEZI_ONAYI_BEKLIYOR"
	DurumSirketOnayiBekliyor         = "SIRKET_ONAYI_BEKLIYOR"
	DurumOnaylandi                   = "ONAYLANDI"
	DurumReddedildi                  = "REDDEDILDI"
	DurumIptalEdildi                 = "IPTAL_EDILDI"
)

// Karar değerleri (karar alanlarında saklanır)
const (
	KararRed      = -1
	KararBekliyor = 0
	KararOnay     = 1
)

// AktorSirket şirket yetkilisi; kullanıcı rolü değildir, OTP ile yetkilenir
const AktorSirket = "SIRKET"

var (
	ErrGecersizGecis = errors.New("başvuru bu durumda bu işleme izin vermiyor")
	ErrGecersizKarar = errors.New("geçersiz karar değeri")
	ErrGecersizAktor = errors.New("geçersiz aktör")
)

// SonrakiDurum başvuru onay durum makinesinin saf geçiş fonksiyonu.
// (mevcut durum, aktör, karar) → yeni durum. Veritabanından bağımsızdır.
//
// Sıralama: danışman → kariyer merkezi → şirket. Her taraf yalnızca kendi
// aşamasında karar verebilir; red her aşamada akışı keser. Öğrenci yalnızca
// danışman aşamasında iptal edebilir (karar = KararRed).
func SonrakiDurum(durum, aktor string, karar int) (string, error) {
	if karar != KararOnay && karar != KararRed {
		return "", ErrGecersizKarar
	}

	switch aktor {
	case RolDanisman:
		if durum != DurumDanismanOnayiBekliyor {
			return "", ErrGecersizGecis
		}
		if karar == KararOnay {
			return DurumKariyerMerkeziOnayiBekliyor, nil
		}
		return DurumReddedildi, nil

	case RolKariyerMerkezi:
		if durum != DurumKariyerMerkeziOnayiBekliyor {
			return "", ErrGecersizGecis
		}
		if karar == KararOnay {
			return DurumSirketOnayiBekliyor, nil
		}
		return DurumReddedildi, nil

	case AktorSirket:
		if durum != DurumSirketOnayiBekliyor {
			return "", ErrGecersizGecis
		}
		if karar == KararOnay {
			return DurumOnaylandi, nil
		}
		return DurumReddedildi, nil

	case RolOgrenci:
		// Öğrenci yalnızca iptal edebilir, o da ilk aşamadayken
		if karar != KararRed || durum != DurumDanismanOnayiBekliyor {
			return "", ErrGecersizGecis
		}
		return DurumIptalEdildi, nil
	}

	return "", ErrGecersizAktor
}

// TopluDurum üç karar alanı ve iptal bayrağından toplu durumu türetir.
// Toplu durum her zaman bu fonksiyonun çıktısıyla tutarlı olmalıdır.
func TopluDurum(danisman, kariyerMerkezi, sirket int, iptal bool) string {
	if iptal {
		return DurumIptalEdildi
	}
	if danisman == KararRed || kariyerMerkezi == KararRed || sirket == KararRed {
		return DurumReddedildi
	}
	switch {
	case danisman == KararBekliyor:
		return DurumDanismanOnayiBekliyor
	case kariyerMerkezi == KararBekliyor:
		return DurumKariyerMerkeziOnayiBekliyor
	case sirket == KararBekliyor:
		return DurumSirketOnayiBekliyor
	}
	return DurumOnaylandi
}

// ── Staj defteri durumları ──

const (
	DefterBeklemede              = "BEKLEMEDE"
	DefterSirketOnayiBekliyor    = "SIRKET_ONAYI_BEKLIYOR"
	DefterSirketReddetti         = "SIRKET_REDDETTI"
	DefterDanismanOnayiBekliyor  = "DANISMAN_ONAYI_BEKLIYOR"
	DefterDanismanReddetti       = "DANISMAN_REDDETTI"
	DefterOnaylandi              = "ONAYLANDI"
	DefterReddedildi             = "REDDEDILDI"

	// Yalnızca görüntüleme için türetilen durumlar; asla saklanmaz
	DefterBaslamadi   = "BASLAMADI"
	DefterDevamEdiyor = "DEVAM_EDIYOR"
)

// DefterSonrakiDurum staj defteri iki taraflı onay döngüsünün geçiş fonksiyonu.
// Şirket önce karar verir; danışman yalnızca şirket onayından sonra.
func DefterSonrakiDurum(durum, aktor string, karar int) (string, error) {
	if karar != KararOnay && karar != KararRed {
		return "", ErrGecersizKarar
	}

	switch aktor {
	case AktorSirket:
		if durum != DefterBeklemede && durum != DefterSirketOnayiBekliyor {
			return "", ErrGecersizGecis
		}
		if karar == KararOnay {
			return DefterDanismanOnayiBekliyor, nil
		}
		return DefterSirketReddetti, nil

	case RolDanisman:
		if durum != DefterDanismanOnayiBekliyor {
			return "", ErrGecersizGecis
		}
		if karar == KararOnay {
			return DefterOnaylandi, nil
		}
		return DefterDanismanReddetti, nil
	}

	return "", ErrGecersizAktor
}

// DefterRedDurumu defter yeniden yüklemeye izin veren durumlardan mı
func DefterRedDurumu(durum string) bool {
	return durum == DefterSirketReddetti ||
		durum == DefterDanismanReddetti ||
		durum == DefterReddedildi
}

// DefterGorunumDurumu saklanan durum genel BEKLEMEDE ise staj tarih
// aralığından görüntüleme durumu türetir; diğer durumlar aynen döner.
func DefterGorunumDurumu(durum string, baslangic, bitis time.Time, simdi time.Time) string {
	if durum != DefterBeklemede {
		return durum
	}
	if simdi.Before(baslangic) {
		return DefterBaslamadi
	}
	if !simdi.After(bitis) {
		return DefterDevamEdiyor
	}
	return DefterBeklemede
}
