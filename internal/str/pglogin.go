//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

type PostgresLogin struct {
	Host   string `env:"MGS_PGHOST"`
	Port   int    `env:"MGS_PGPORT"`
	User   string `env:"MGS_PGUSER"`
	Pass   string `env:"MGS_PGPASS"`
	DBName string `env:"MGS_PGDB"`
}
