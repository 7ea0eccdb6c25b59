package naming

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Meta
	}{
		{
			name: "basic",
			path: "CAM1_2018_10_25_11_30_00_01_5.jpg",
			want: Meta{Camera: "CAM1", Timestamp: "2018_10_25_11_30_00_01", Index: 4, Ext: "jpg"},
		},
		{
			name: "full path",
			path: "/data/kioloa/CAM1_2018_10_25_11_30_00_01_5.jpg",
			want: Meta{Camera: "CAM1", Timestamp: "2018_10_25_11_30_00_01", Index: 4, Ext: "jpg"},
		},
		{
			name: "camera name with underscores",
			path: "kioloa-hill_GV01_2018_10_25_11_30_00_01_12.jpeg",
			want: Meta{Camera: "kioloa-hill_GV01", Timestamp: "2018_10_25_11_30_00_01", Index: 11, Ext: "jpeg"},
		},
		{
			name: "uppercase extension normalized",
			path: "GC02L_2016_04_28_16_35_00_22_1.TIFF",
			want: Meta{Camera: "GC02L", Timestamp: "2016_04_28_16_35_00_22", Index: 0, Ext: "tiff"},
		},
		{
			name: "multiple extra timestamp groups",
			path: "GV03_2019_01_02_03_04_05_06_07_3.tif",
			want: Meta{Camera: "GV03", Timestamp: "2019_01_02_03_04_05_06_07", Index: 2, Ext: "tif"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.path)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	paths := []string{
		"not_a_valid_name.jpg",
		"CAM1_2018_10_25_11_30_00_5.jpg",  // no extra timestamp group
		"CAM1_2018_10_25_11_30_00_01_5.png", // unsupported extension
		"CAM1_2018_10_25_11_30_00_01_5",
		"CAM1_2018_10_25_11_30_00_01_0.jpg", // sequence numbers are 1-based
		"2018_10_25_11_30_00_01_5.jpg",      // no camera name
		"",
	}

	for _, path := range paths {
		if _, err := Parse(path); !errors.Is(err, ErrBadName) {
			t.Errorf("Parse(%q) = %v, want ErrBadName", path, err)
		}
	}
}
