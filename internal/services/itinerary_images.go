package services

import "strings"

var dayImageURLs = []string{
	"https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?w=400",
	"https://images.unsplash.com/photo-1496442226666-8d4d0e62e6e9?w=400",
	"https://images.unsplash.com/photo-1488646953014-85cb44e25828?w=400",
	"https://images.unsplash.com/photo-1502602898657-3e91760cbb34?w=400",
	"https://images.unsplash.com/photo-1519904981063-b0cf448d479e?w=400",
	"https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=400",
}

var headerImages = []struct {
	keyword string
	url     string
}{
	{"goa", "https://images.unsplash.com/photo-1580227974546-0b84c55d444e?w=800"},
	{"bali", "https://images.unsplash.com/photo-1537996194471-e657df975ab4?w=800"},
	{"tokyo", "https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?w=800"},
	{"paris", "https://images.unsplash.com/photo-1502602898657-3e91760cbb34?w=800"},
	{"new york", "https://images.unsplash.com/photo-1496442226666-8d4d0e62e6e9?w=800"},
}

const defaultHeaderImage = "https://images.unsplash.com/photo-1488646953014-85cb44e25828?w=800"

// DayImageURL cycles through a fixed set of placeholder images.
func DayImageURL(dayNumber int) string {
	idx := dayNumber - 1
	if idx < 0 {
		idx = 0
	}
	return dayImageURLs[idx%len(dayImageURLs)]
}

func DestinationHeaderImage(destination string) string {
	lower := strings.ToLower(destination)
	for _, h := range headerImages {
		if strings.Contains(lower, h.keyword) {
			return h.url
		}
	}
	return defaultHeaderImage
}
