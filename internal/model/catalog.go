package model

// Reference catalogs of physical resources. These carry no timeline of their
// own, booking history lives in the per-kind event tables.

type Station struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"index" json:"name"`
	Site string `json:"site"`
}

type Crawler struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"index" json:"name"`
}

type Platform struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"index" json:"name"`
	Type string `json:"type"`
}

type RadioTerminal struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Name     string `gorm:"index" json:"name"`
	Location string `json:"location"`
}

type Operator struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Role struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"uniqueIndex" json:"name"`
}
