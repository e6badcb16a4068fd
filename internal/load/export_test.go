package load

// StageRows lets tests drive staging from an in-memory row reader.
var StageRows = stageRows
