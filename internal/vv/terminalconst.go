//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	MINCONFIG = `
{"DocDir": "glosses", "HostPort": 8010, "Footnotes": true}
`

	TERMINALTEXT = `Copyright (C) %s / %s
      %s

      This program comes with ABSOLUTELY NO WARRANTY; without even the
      implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.

      This is free software, and you are welcome to redistribute it and/or
      modify it under the terms of the GNU General Public License version 3.`

	PROJYEAR = "2022-24"
	PROJAUTH = "E. Gunderson"
	PROJMAIL = "Department of Classics, 125 Queen’s Park, Toronto, ON  M5S 2C7 Canada"
	PROJURL  = "https://github.com/e-gun/MultiGlossServer"

	HELPTEXTTEMPLATE = `S3command line optionsS0:
   C1-bwC0          disable color output in the console
   C1-csC0          use a custom CSS file; will try to read "C3{{.home}}{{.css}}C0"
   C1-ddC0 C2{dir}C0    load every document in this directory [C6currentC0: C3{{.docdir}}C0]
   C1-docC0 C2{file}C0  load this document; repeat the flag to load several
                   known formats: C3.jsonC0, C3.yamlC0, C3.ymlC0, C3.mgC0, C3.tsvC0
   C1-elC0 C2{num}C0    set echo server log level (C10-3C0) [C6currentC0: C3{{.echoll}}C0]
   C1-exC0 C2{file}C0   write the first document as a single self-contained HTML page and exit
   C1-fnC0          render without footnotes and notes [C6footnotes currentlyC0: C3{{.footnotes}}C0]
   C1-glC0 C2{num}C0    set golang log level (C10-5C0) [C6currentC0: C3{{.mgsll}}C0]
   C1-gzC0          enable gzip compression of the server's output
   C1-hC0           print this help information
   C1-pcC0          enable CPU profiling run
   C1-pdC0          also load every document in the PostgreSQL store
   C1-pgC0 C2{string}C0 supply full PostgreSQL credentials C4(*)C0
   C1-pmC0          enable MEM profiling run
   C1-qC0           quiet startup: suppress copyright notice
   C1-saC0 C2{string}C0 server IP address [C6currentC0: C3{{.host}}C0]
   C1-spC0 C2{num}C0    server port [C6currentC0: C3{{.port}}C0]
   C1-sqC0 C2{file}C0   also load every document in this SQLite store
   C1-ssC0 C2{file}C0   copy every loaded document into this SQLite store and exit
   C1-tkC0          turn on the uptime ticker [unavailable if OS is Windows]
   C1-vC0           print version info and exit
   C1-vvC0          print full version info and exit
   C1-wmC0          report morphemes that lack a gloss on a sibling line
     (*) S3exampleS0:
         C4"{\"Pass\": \"YOURPASSWORDHERE\" ,\"Host\": \"127.0.0.1\", \"Port\": 5432, \"DBName\": \"multiglossDB\" ,\"User\": \"mgs_rd\"}"C0

     S1NB:S0 a properly formatted version of "C3{{.conffile}}C0" in "C3{{.home}}C0" configures everything for you.
         Every setting can also be supplied as an C3MGS_*C0 environment variable. See
             C3{{.projurl}}C0
`
)
