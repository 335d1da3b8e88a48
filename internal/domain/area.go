// Package domain contains the shared types used across the application.
package domain

// Area is a named ambient theme with its media resources. The catalog is
// supplied by configuration and treated as a read-only lookup table.
type Area struct {
	ID          string `yaml:"id" json:"id"`
	DisplayName string `yaml:"displayName" json:"displayName"`
	AudioPath   string `yaml:"audioPath" json:"audioPath"`
	VideoPath   string `yaml:"videoPath" json:"videoPath"`
}
