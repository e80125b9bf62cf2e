package catalog

import "strings"

// MaxBanners is how many banners the storefront carousel shows.
const MaxBanners = 6

func CheckBannerURL(url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", invalid("Image URL cannot be empty.")
	}
	return url, nil
}

// CheckBannerCap refuses a new banner once the cap is reached.
func CheckBannerCap(count int64) error {
	if count >= MaxBanners {
		return conflict("Maximum of %d banners allowed. Please delete an existing banner first.", MaxBanners)
	}
	return nil
}
