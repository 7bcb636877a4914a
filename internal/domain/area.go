package domain

type AreaType string

const (
	AreaDistrict              AreaType = "district"
	AreaDivisionalSecretariat AreaType = "divisional_secretariat"
	AreaGNDivision            AreaType = "grama_niladhari_division"
)

func (t AreaType) IsValid() bool {
	return t == AreaDistrict || t == AreaDivisionalSecretariat || t == AreaGNDivision
}

type District struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type DivisionalSecretariat struct {
	ID         int64  `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	DistrictID int64  `json:"district_id" db:"district_id"`
}

type GNDivision struct {
	ID                      int64  `json:"id" db:"id"`
	Name                    string `json:"name" db:"name"`
	DivisionalSecretariatID int64  `json:"divisional_secretariat_id" db:"divisional_secretariat_id"`
}

// HouseScope is the geographic chain a house belongs to.
type HouseScope struct {
	HouseID                 int64 `db:"house_id"`
	GNDivisionID            int64 `db:"grama_niladhari_division_id"`
	DivisionalSecretariatID int64 `db:"divisional_secretariat_id"`
	DistrictID              int64 `db:"district_id"`
}
