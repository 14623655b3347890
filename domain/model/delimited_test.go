package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDelimited(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		opts     delimitedOptions
		header   Header
		records  []Record
		wantErr  bool
		errMatch error
	}{
		{
			name:    "simple",
			content: "a,b\n1,2\n",
			opts:    delimitedOptions{comma: ','},
			header:  Header{"a", "b"},
			records: []Record{{"1", "2"}},
		},
		{
			name:    "blank lines skipped",
			content: "\na,b\n\n1,2\n   \n3,4\n",
			opts:    delimitedOptions{comma: ','},
			header:  Header{"a", "b"},
			records: []Record{{"1", "2"}, {"3", "4"}},
		},
		{
			name:    "row labels dropped",
			content: "a,b\nx,1,2\ny,3,4\n",
			opts:    delimitedOptions{comma: ','},
			header:  Header{"a", "b"},
			records: []Record{{"1", "2"}, {"3", "4"}},
		},
		{
			name:    "short rows padded",
			content: "a,b,c\n1\n",
			opts:    delimitedOptions{comma: ','},
			header:  Header{"a", "b", "c"},
			records: []Record{{"1", "", ""}},
		},
		{
			name:    "empty and duplicate names",
			content: "a,a,,a\n1,2,3,4\n",
			opts:    delimitedOptions{comma: ','},
			header:  Header{"a", "a.1", "Unnamed: 2", "a.2"},
			records: []Record{{"1", "2", "3", "4"}},
		},
		{
			name:    "wide rows extend header when flexible",
			content: "a\n1,2,3\n",
			opts:    delimitedOptions{comma: ',', flexible: true},
			header:  Header{"a", "Unnamed: 1", "Unnamed: 2"},
			records: []Record{{"1", "2", "3"}},
		},
		{
			name:    "wide rows fail when strict",
			content: "a\n1,2,3\n",
			opts:    delimitedOptions{comma: ','},
			wantErr: true,
		},
		{
			name:    "quoted fields",
			content: "city,state\n\"Birmingham, AL\",Alabama\n",
			opts:    delimitedOptions{comma: ','},
			header:  Header{"city", "state"},
			records: []Record{{"Birmingham, AL", "Alabama"}},
		},
		{
			name:     "empty",
			content:  "\n\n",
			opts:     delimitedOptions{comma: ','},
			wantErr:  true,
			errMatch: ErrEmptyData,
		},
		{
			name:     "binary",
			content:  "a,b\n\x00\x01,2\n",
			opts:     delimitedOptions{comma: ','},
			wantErr:  true,
			errMatch: errNotText,
		},
		{
			name:     "quoted field open at end of input",
			content:  "a,b\n\"x,1\n2,3\n",
			opts:     delimitedOptions{comma: ','},
			wantErr:  true,
			errMatch: errUnclosedQuote,
		},
		{
			name:    "quote inside unquoted field is literal",
			content: "a,b\n1 \"x,2\n",
			opts:    delimitedOptions{comma: ','},
			header:  Header{"a", "b"},
			records: []Record{{"1 \"x", "2"}},
		},
		{
			name:    "header only",
			content: "a,b\n",
			opts:    delimitedOptions{comma: ','},
			header:  Header{"a", "b"},
			records: []Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			header, records, err := parseDelimited([]byte(tt.content), tt.opts)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMatch != nil {
					assert.ErrorIs(t, err, tt.errMatch)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.header, header)
			assert.Equal(t, tt.records, records)
		})
	}
}

func TestParseWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		header  Header
		records []Record
	}{
		{
			name:    "runs of blanks and tabs",
			content: "  a   b\tc \n\n d  e\n",
			header:  Header{"a", "b", "c"},
			records: []Record{{"d", "e", ""}},
		},
		{
			name:    "quotes do not join lines",
			content: "PID CMD\n1 \"sleep\n2 bash\n3 vim\n",
			header:  Header{"PID", "CMD"},
			records: []Record{{"1", "\"sleep"}, {"2", "bash"}, {"3", "vim"}},
		},
		{
			name:    "leading quote stays in its token",
			content: "PID CMD\n\"sleep 1\n2 bash\n",
			header:  Header{"PID", "CMD"},
			records: []Record{{"\"sleep", "1"}, {"2", "bash"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			header, records, err := parseWhitespace([]byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.header, header)
			assert.Equal(t, tt.records, records)
		})
	}

	_, _, err := parseWhitespace([]byte(" \n\t\n"))
	assert.ErrorIs(t, err, ErrEmptyData)
}

func TestHasUnclosedQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		content string
		want    bool
	}{
		{content: "a,b\n1,2\n", want: false},
		{content: "a,b\n\"1,2\n", want: true},
		{content: "a,b\n\"1\",2\n", want: false},
		{content: "a,b\n\"x\ny\",2\n", want: false},
		{content: "a,b\n\"say \"\"hi\"\"\",2", want: false},
		{content: "a,b\n\"x\"y,2\n", want: true},
		{content: "a,b\n1 \"x,2\n", want: false},
		{content: "a,b\r\n\"1\"\r\n", want: false},
	}

	for _, tt := range tests {
		if got := hasUnclosedQuote([]byte(tt.content), ','); got != tt.want {
			t.Errorf("hasUnclosedQuote(%q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}

func TestParseLTSV(t *testing.T) {
	t.Parallel()

	content := "host:127.0.0.1\tstatus:200\nhost:10.0.0.1\tsize:512\tstatus:404\n\n"
	header, records, err := parseLTSV([]byte(content))
	require.NoError(t, err)

	assert.Equal(t, Header{"host", "status", "size"}, header)
	assert.Equal(t, []Record{
		{"127.0.0.1", "200", ""},
		{"10.0.0.1", "404", "512"},
	}, records)

	_, _, err = parseLTSV([]byte("\n"))
	assert.ErrorIs(t, err, ErrEmptyData)
}

func TestNormalizeHeader(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Header{"x", "x.1", "x.1.1", "Unnamed: 3"}, normalizeHeader([]string{"x", "x", "x.1", " "}))
}
