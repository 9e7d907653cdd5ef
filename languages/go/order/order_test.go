package order

import (
	"testing"
)

func TestPlace(t *testing.T) {
	tests := []struct {
		name      string
		order     ByteOrder
		off, n    uint8
		wantMask  uint8
		wantShift uint8
	}{
		{"Success: msb whole byte", MSBFirst, 0, 8, 0xff, 0},
		{"Success: msb top bit", MSBFirst, 0, 1, 0x80, 7},
		{"Success: msb middle", MSBFirst, 2, 3, 0b00111000, 3},
		{"Success: msb bottom bit", MSBFirst, 7, 1, 0x01, 0},
		{"Success: lsb whole byte", LSBFirst, 0, 8, 0xff, 0},
		{"Success: lsb bottom bit", LSBFirst, 0, 1, 0x01, 0},
		{"Success: lsb middle", LSBFirst, 2, 3, 0b00011100, 2},
		{"Success: lsb top bit", LSBFirst, 7, 1, 0x80, 7},
	}

	for _, test := range tests {
		mask, shift := test.order.Place(test.off, test.n)
		if mask != test.wantMask {
			t.Errorf("TestPlace(%s): mask got %08b, want %08b", test.name, mask, test.wantMask)
		}
		if shift != test.wantShift {
			t.Errorf("TestPlace(%s): shift got %d, want %d", test.name, shift, test.wantShift)
		}
	}
}

func TestPlaceTablesComplete(t *testing.T) {
	for _, o := range []ByteOrder{MSBFirst, LSBFirst} {
		for n := uint8(1); n <= 8; n++ {
			for off := uint8(0); off+n <= 8; off++ {
				mask, shift := o.Place(off, n)
				// The selected bits shifted down must be exactly the low n bits.
				if got, want := mask>>shift, uint8(1<<n-1); got != want {
					t.Errorf("TestPlaceTablesComplete(%s, off %d, n %d): mask>>shift got %08b, want %08b", o, off, n, got, want)
				}
			}
		}
	}
}

func TestNextAndHighFirst(t *testing.T) {
	if MSBFirst.Start(2, 5) != 2 || LSBFirst.Start(2, 5) != 2 {
		t.Errorf("TestNextAndHighFirst: traversal must start at the field's first byte")
	}
	if MSBFirst.Next(3) != 4 || LSBFirst.Next(3) != 4 {
		t.Errorf("TestNextAndHighFirst: byte traversal must be ascending")
	}
	if !MSBFirst.HighFirst() {
		t.Errorf("TestNextAndHighFirst: MSBFirst.HighFirst() got false, want true")
	}
	if LSBFirst.HighFirst() {
		t.Errorf("TestNextAndHighFirst: LSBFirst.HighFirst() got true, want false")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    ByteOrder
		wantErr bool
	}{
		{"Success: big", "big", MSBFirst, false},
		{"Success: MSBFirst", "MSBFirst", MSBFirst, false},
		{"Success: little", "little", LSBFirst, false},
		{"Error: unknown", "middle", nil, true},
	}

	for _, test := range tests {
		got, err := Parse(test.in)
		switch {
		case err == nil && test.wantErr:
			t.Errorf("TestParse(%s): got err == nil, want err != nil", test.name)
			continue
		case err != nil && !test.wantErr:
			t.Errorf("TestParse(%s): got err == %s, want err == nil", test.name, err)
			continue
		case err != nil:
			continue
		}
		if got != test.want {
			t.Errorf("TestParse(%s): got %v, want %v", test.name, got, test.want)
		}
	}
}
