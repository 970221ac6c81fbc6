// Package formmeta holds the static registry describing where, inside each
// form template's free-form payload, the fields needed for letter
// reconciliation live. The registry is assembled once at init and is
// read-only afterwards, so concurrent lookups need no locking.
package formmeta

import "github.com/sidesa-dev/sidesa-api/internal/models"

// Meta describes one form template. Field values are dot separated paths into
// the submitted form data; an empty NumberField means the template carries no
// official number at all.
type Meta struct {
	Slug           string
	Category       string
	DocumentTypeID string
	NumberField    string
	DateField      string
	NameField      string
	NIKField       string
	BundleField    string
}

// fieldOptions are the per-family defaults applied to every slug in that
// family unless a slug override says otherwise.
type fieldOptions struct {
	Number string
	Date   string
	Name   string
	NIK    string
	Bundle string
}

var familyDefaults = map[string]fieldOptions{
	models.CategoryUmum:         {Number: "nomor_surat", Date: "tanggal_surat", Name: "nama", NIK: "nik"},
	models.CategoryKependudukan: {Number: "nomor_surat", Date: "tanggal_surat", Name: "nama", NIK: "nik"},
	models.CategoryUsaha:        {Number: "nomor_surat", Date: "tanggal_surat", Name: "nama_pemilik", NIK: "nik"},
	models.CategoryKematian:     {Number: "nomor_surat", Date: "tanggal_surat", Name: "nama_almarhum", NIK: "nik"},
	models.CategoryNikah:        {Number: "nomor_surat", Date: "tanggal_surat", Name: "nama_lengkap", NIK: "nik"},
}

// slugSpec binds a template slug to its family plus any field overrides.
// Override pointers distinguish "use the family default" (nil) from "this
// template has no such field" (pointer to empty string).
type slugSpec struct {
	category string
	typeCode string
	number   *string
	date     *string
	name     *string
	nik      *string
	bundle   *string
}

func str(s string) *string { return &s }

var slugTable = map[string]slugSpec{
	"surat-keterangan-umum":     {category: models.CategoryUmum, typeCode: "umum"},
	"surat-keterangan-domisili": {category: models.CategoryKependudukan, typeCode: "domisili"},
	"surat-keterangan-usaha": {
		category: models.CategoryUsaha,
		typeCode: "domisili_usaha",
		name:     str("pemilik.nama"),
		nik:      str("pemilik.nik"),
	},
	"surat-keterangan-kematian": {category: models.CategoryKematian, typeCode: "kematian"},

	// Marriage packet. N1-N6 share one bundle key so the five prerequisite
	// forms of a single case can be tracked together.
	"surat-pengantar-nikah": {
		category: models.CategoryNikah,
		typeCode: "N1",
	},
	"surat-keterangan-asal-usul": {
		category: models.CategoryNikah,
		typeCode: "N2",
	},
	"surat-persetujuan-mempelai": {
		category: models.CategoryNikah,
		typeCode: "N3",
		name:     str("nama_calon_suami"),
		nik:      str("nik_calon_suami"),
		bundle:   str("nik_calon_suami"),
	},
	"surat-izin-orang-tua": {
		category: models.CategoryNikah,
		typeCode: "N5",
		name:     str("nama_anak"),
		nik:      str("nik_anak"),
		bundle:   str("nik_anak"),
	},
	"surat-keterangan-kematian-pasangan": {
		category: models.CategoryNikah,
		typeCode: "N6",
		// N6 is issued from the civil register, not numbered by the form.
		number: str(""),
	},
}

var registry map[string]Meta

func init() {
	registry = make(map[string]Meta, len(slugTable))
	for slug, spec := range slugTable {
		defaults := familyDefaults[spec.category]
		meta := Meta{
			Slug:           slug,
			Category:       spec.category,
			DocumentTypeID: spec.typeCode,
			NumberField:    defaults.Number,
			DateField:      defaults.Date,
			NameField:      defaults.Name,
			NIKField:       defaults.NIK,
			BundleField:    defaults.Bundle,
		}
		if spec.number != nil {
			meta.NumberField = *spec.number
		}
		if spec.date != nil {
			meta.DateField = *spec.date
		}
		if spec.name != nil {
			meta.NameField = *spec.name
		}
		if spec.nik != nil {
			meta.NIKField = *spec.nik
		}
		if spec.bundle != nil {
			meta.BundleField = *spec.bundle
		}
		registry[slug] = meta
	}
}

// Lookup returns the metadata for a template slug. Callers must treat a miss
// as non-fatal: the submission simply is not reconciled into the register.
func Lookup(slug string) (Meta, bool) {
	meta, ok := registry[slug]
	return meta, ok
}

// Slugs returns all registered template slugs.
func Slugs() []string {
	out := make([]string, 0, len(registry))
	for slug := range registry {
		out = append(out, slug)
	}
	return out
}
