package config

import "math/rand"

// PersonalColor is the fixed default for tasks created without a color.
const PersonalColor = "#1f3693"

// FreshPalette holds the pastel colors handed to work tasks and to
// AI-extracted tasks when the model omits one.
var FreshPalette = []string{
	"#FF9AA2",
	"#FFB7B2",
	"#FFDAC1",
	"#E2F0CB",
	"#B5EAD7",
	"#C7CEEA",
	"#A0E7E5",
	"#FBE7C6",
	"#B4F8C8",
	"#FFAEBC",
}

func RandomFreshColor() string {
	return FreshPalette[rand.Intn(len(FreshPalette))]
}
