package calendar

var sampleEvents = []Event{
	{ID: 1, Date: "2024-03-20", Time: "08:30", Currency: "USD", Event: "Federal Reserve Interest Rate Decision", Impact: "High", Forecast: "5.50%", Previous: "5.50%", Actual: "5.50%"},
	{ID: 2, Date: "2024-03-20", Time: "10:00", Currency: "EUR", Event: "ECB President Lagarde Speech", Impact: "Medium", Forecast: "-", Previous: "-", Actual: "-"},
	{ID: 3, Date: "2024-03-20", Time: "12:30", Currency: "GBP", Event: "CPI m/m", Impact: "High", Forecast: "0.5%", Previous: "0.4%", Actual: "-"},
	{ID: 4, Date: "2024-03-20", Time: "14:00", Currency: "JPY", Event: "Trade Balance", Impact: "Medium", Forecast: "-¥800B", Previous: "-¥1,200B", Actual: "-"},
	{ID: 5, Date: "2024-03-21", Time: "09:00", Currency: "AUD", Event: "Employment Change", Impact: "High", Forecast: "25K", Previous: "20K", Actual: "-"},
	{ID: 6, Date: "2024-03-21", Time: "11:30", Currency: "CAD", Event: "Retail Sales m/m", Impact: "Medium", Forecast: "0.3%", Previous: "0.2%", Actual: "-"},
	{ID: 7, Date: "2024-03-21", Time: "13:00", Currency: "NZD", Event: "GDP q/q", Impact: "High", Forecast: "0.5%", Previous: "0.4%", Actual: "-"},
	{ID: 8, Date: "2024-03-22", Time: "08:00", Currency: "CHF", Event: "SNB Monetary Policy Assessment", Impact: "High", Forecast: "-", Previous: "-", Actual: "-"},
	{ID: 9, Date: "2024-03-22", Time: "10:30", Currency: "EUR", Event: "ECB Economic Bulletin", Impact: "Medium", Forecast: "-", Previous: "-", Actual: "-"},
	{ID: 10, Date: "2024-03-22", Time: "12:00", Currency: "GBP", Event: "Retail Sales m/m", Impact: "Medium", Forecast: "0.3%", Previous: "0.2%", Actual: "-"},
	{ID: 11, Date: "2024-03-23", Time: "09:30", Currency: "JPY", Event: "National CPI y/y", Impact: "High", Forecast: "2.1%", Previous: "2.0%", Actual: "-"},
	{ID: 12, Date: "2024-03-23", Time: "14:00", Currency: "USD", Event: "Fed Chair Powell Speech", Impact: "High", Forecast: "-", Previous: "-", Actual: "-"},
}
