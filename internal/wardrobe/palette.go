package wardrobe

// Palette is the preset brush colours, four per row.
var Palette = [32]string{
	"#FF0000", "#FF4500", "#FF8C00", "#FFD700",
	"#FFFF00", "#ADFF2F", "#00FF00", "#32CD32",
	"#00FA9A", "#00FFFF", "#00BFFF", "#1E90FF",
	"#0000FF", "#8A2BE2", "#FF00FF", "#C71585",
	"#FF69B4", "#FFB6C1", "#F08080", "#FA8072",
	"#FFA07A", "#F4A460", "#D2691E", "#8B4513",
	"#A0522D", "#D2B48C", "#F5DEB3", "#FFF8DC",
	"#FFFFFF", "#C0C0C0", "#808080", "#000000",
}

// InPalette reports whether hex (canonical "#RRGGBB") is a preset colour.
func InPalette(hex string) bool {
	for _, c := range Palette {
		if c == hex {
			return true
		}
	}
	return false
}
