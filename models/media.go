package models

// Media describes one uploaded image after normalization.
type Media struct {
	FileType     string `json:"fileType"`
	FileSize     int64  `json:"fileSize"`
	Filename     string `json:"fileName"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	FullSizeURL  string `json:"fullSizeUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
}
