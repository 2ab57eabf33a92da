package model

// Country is a reference-data row in the `countries` table.  Countries are
// seeded once from locale data and are effectively immutable afterwards.
//
// Fields:
//  ID   – primary key identifier.
//  Name – unique English country name, displayed sorted alphabetically.
type Country struct {
	ID   uint64 // countries.id
	Name string // countries.name
}

// City is a row in the `cities` table.  Every city belongs to exactly one
// country; several cities may share a country.  Cities are created lazily
// the first time a field references them.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – city name as entered on the field form.
//  CountryID – owning country.
type City struct {
	ID        uint64 // cities.id
	Name      string // cities.name
	CountryID uint64 // cities.country_id
}
