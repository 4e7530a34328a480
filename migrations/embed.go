// Package migrations 把 SQL 文件打进二进制，部署时不再依赖工作目录。
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
