package model

// Field represents a football playground persisted in the `fields` table.
// A field anchors zero or more games and is owned by the admin who created
// it.  Country and city are fixed at creation time; every other attribute
// can be edited later.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – field name, unique together with country and city.
//  CountryID    – country the field is located in.
//  CityID       – city the field is located in.
//  Address      – street address.
//  ImageURL     – picture of the field.
//  PhoneNumber  – contact phone.
//  Parking      – parking available.
//  Shower       – showers available.
//  ChangingRoom – changing room available.
//  Cafe         – cafe on site.
//  Description  – free-text description.
//  AdminID      – admin who owns the field.
//  CreatedAt    – timestamp when the row was created.
//  UpdatedAt    – timestamp of last update.
type Field struct {
	ID           uint64 // fields.id
	Name         string // fields.name
	CountryID    uint64 // fields.country_id
	CityID       uint64 // fields.city_id
	Address      string // fields.address
	ImageURL     string // fields.image_url
	PhoneNumber  string // fields.phone_number
	Parking      bool   // fields.parking
	Shower       bool   // fields.shower
	ChangingRoom bool   // fields.changing_room
	Cafe         bool   // fields.cafe
	Description  string // fields.description
	AdminID      uint64 // fields.admin_id
	CreatedAt    string // fields.created_at
	UpdatedAt    string // fields.updated_at
}
