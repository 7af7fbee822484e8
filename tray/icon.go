package tray

// iconData is a 16x16 speaker glyph in ICO format, embedded so the binary
// needs no asset files.
var iconData = []byte{
	0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x10, 0x10, 0x00, 0x00, 0x01, 0x00,
	0x20, 0x00, 0x68, 0x04, 0x00, 0x00, 0x16, 0x00, 0x00, 0x00, 0x28, 0x00,
	0x00, 0x00, 0x10, 0x00, 0x00, 0x00, 0x20, 0x00, 0x00, 0x00, 0x01, 0x00,
	0x20, 0x00, 0x00, 0x00, 0x00, 0x00, 0x40, 0x04, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0xff, 0xff,
	0xff, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0xff, 0xff, 0xff, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0xff, 0xff, 0xff, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0xff, 0xff, 0xff, 0xff, 0x94, 0x40, 0x1e, 0xff, 0xff, 0xff,
	0xff, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0xff, 0xff,
	0xff, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0xff, 0xff, 0xff, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0xff, 0xff,
	0xff, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0xff, 0xff,
	0xff, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x94, 0x40, 0x1e, 0xff, 0xff, 0xff,
	0xff, 0xff, 0x94, 0x40, 0x1e, 0xff, 0xff, 0xff, 0xff, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0xff, 0xff, 0xff, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0xff, 0xff,
	0xff, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0xff, 0xff, 0xff, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40,
	0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x94, 0x40, 0x1e, 0xff, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}
