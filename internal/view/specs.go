package view

import "github.com/cephas20k/secops/internal/models"

// Users returns the listing spec for user collections.
func Users() Spec[models.User] {
	return Spec[models.User]{
		DefaultSort: "createdAt",
		Fields: map[string]func(models.User) Value{
			"username":       func(u models.User) Value { return Str(u.Username) },
			"email":          func(u models.User) Value { return Str(u.Email) },
			"createdAt":      func(u models.User) Value { return Time(u.CreatedAt) },
			"lastLogin":      func(u models.User) Value { return Time(u.LastLogin) },
			"geo":            func(u models.User) Value { return Str(u.Geo) },
			"riskScore":      func(u models.User) Value { return Number(float64(u.RiskScore)) },
			"active":         func(u models.User) Value { return Bool(u.Active) },
			"loginAnomalies": func(u models.User) Value { return Number(float64(u.LoginAnomalies)) },
		},
		SearchText: func(u models.User) []string {
			return []string{u.Username, u.Email, u.Geo, u.ID}
		},
	}
}

// Devices returns the listing spec for device collections.
func Devices() Spec[models.Device] {
	return Spec[models.Device]{
		DefaultSort: "lastSeen",
		Fields: map[string]func(models.Device) Value{
			"label":     func(d models.Device) Value { return Str(d.Label) },
			"platform":  func(d models.Device) Value { return Str(d.Platform) },
			"lastSeen":  func(d models.Device) Value { return Time(d.LastSeen) },
			"trusted":   func(d models.Device) Value { return Bool(d.Trusted) },
			"geo":       func(d models.Device) Value { return Str(d.Geo) },
			"ipAddress": func(d models.Device) Value { return Str(d.IPAddress) },
		},
		SearchText: func(d models.Device) []string {
			return []string{d.Label, d.Platform, d.IPAddress, d.Geo}
		},
	}
}
