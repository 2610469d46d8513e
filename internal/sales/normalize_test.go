package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"with time", "2022年10月29日 04時55分", "2022/10/29"},
		{"single digit month and day", "2023年1月5日 10時00分", "2023/01/05"},
		{"date only", "2024年12月31日", "2024/12/31"},
		{"surrounding text", "注文日: 2023年3月9日(木)", "2023/03/09"},
		{"full-width digits", "２０２３年１月５日 １０時００分", "2023/01/05"},
		{"no match", "N/A", "N/A"},
		{"slash format passes through", "2023/01/05", "2023/01/05"},
		{"empty", "", ""},
		{"two digit year", "23年1月5日", "23年1月5日"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.in))
		})
	}
}

func TestCleanAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"¥ 1,234", "1234"},
		{"¥12,345,678", "12345678"},
		{"¥1,000", "1000"},
		{" ¥ 100 ", "100"},
		{"￥１，０００", "1000"},
		{"\u3000¥500", "500"},
		{"¥ 980", "980"},
		{"-¥300", "-300"},
		{"¥", ""},
		{"", ""},
		{"無料", "無料"},
		{"1,000円", "1000円"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanAmount(tt.in))
		})
	}
}
