package replace

// Default is the table used when the configuration file does not provide one.
var Default = MustTable(
	Entry{Token: "{source_examples_path}", Value: "../../examples"},
	Entry{Token: "{tiledb_src_root_url}", Value: "https://github.com/TileDB-Inc/TileDB/blob/dev"},
	Entry{Token: "{tiledb_py_src_root_url}", Value: "https://github.com/TileDB-Inc/TileDB-Py/blob/dev"},
	Entry{Token: "{tiledb_R_src_root_url}", Value: "https://github.com/TileDB-Inc/TileDB-R/blob/master"},
	Entry{Token: "{tiledb_go_src_root_url}", Value: "https://github.com/TileDB-Inc/TileDB-Go/blob/master"},
)
