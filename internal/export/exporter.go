package export

// Table 一张待导出的扁平表：表头 + 若干行，每行与表头列数一致
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Exporter 导出器接口。同一年份 / 同一筛选键重复运行时覆盖旧文件，不追加
type Exporter interface {
	// Export 把一张表写到指定路径
	Export(table Table, outputPath string) error
}
