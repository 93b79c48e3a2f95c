package domain

import (
	"time"

	"github.com/google/uuid"
)

type FileType string

const (
	FileTypeJPEG FileType = "jpeg"
	FileTypePNG  FileType = "png"
	FileTypeSVG  FileType = "svg"
)

// Design is a customer-uploaded artwork. FilePath is empty when the customer
// saved a description only; the compositor falls back to a text caption then.
type Design struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	Description string
	FilePath    string
	FileType    FileType
	CreatedAt   time.Time
}

// HasAsset reports whether the design carries a stored image file.
func (d *Design) HasAsset() bool {
	return d.FilePath != ""
}

// GarmentColors are the colors we stock garment templates for.
var GarmentColors = []string{"white", "black", "red", "blue", "green", "yellow", "purple", "gray"}

// GarmentSizes are the size labels accepted for mockup previews.
var GarmentSizes = []string{"xs", "s", "m", "l", "xl", "xxl"}

// Mockup is the rendered preview of a design on a garment. At most one row
// exists per (design, color, size); concurrent previews converge on it.
type Mockup struct {
	ID        uuid.UUID
	DesignID  uuid.UUID
	Color     string
	Size      string
	ImagePath string
	CreatedAt time.Time
}
