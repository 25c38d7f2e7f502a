package known

// builtin lists Hebrew company names and the short forms people usually
// write for them. Order matters: on equal fuzzy scores the earlier entry wins.
var builtin = []Entry{
	{Alias: "בנק הפועלים", Symbol: "POLI.TA"},
	{Alias: "פועלים", Symbol: "POLI.TA"},
	{Alias: "בנק לאומי", Symbol: "LUMI.TA"},
	{Alias: "לאומי", Symbol: "LUMI.TA"},
	{Alias: "בזק", Symbol: "BEZQ.TA"},
	{Alias: "טבע", Symbol: "TEVA.TA"},
	{Alias: "אלביט", Symbol: "ESLT.TA"},
	{Alias: "נייס", Symbol: "NICE.TA"},
	{Alias: "צ'ק פוינט", Symbol: "CHKP.TA"},
	{Alias: "פרטנר", Symbol: "PTNR.TA"},
	{Alias: "דלק קבוצה", Symbol: "DLEKG.TA"},
	{Alias: "דלק", Symbol: "DLEKG.TA"},
	{Alias: "אמות", Symbol: "AMOT.TA"},
	{Alias: "אלקו", Symbol: "ALCO.TA"},
	{Alias: "דיסקונט", Symbol: "DSCT.TA"},
	{Alias: "מזרחי טפחות", Symbol: "MZTF.TA"},
	{Alias: "הפניקס", Symbol: "PHNX.TA"},
	{Alias: "הראל השקעות", Symbol: "HARL.TA"},
	{Alias: "מגדל ביטוח", Symbol: "MGDL.TA"},
	{Alias: "שופרסל", Symbol: "SAE.TA"},
	{Alias: "שטראוס גרופ", Symbol: "STRS.TA"},
	{Alias: "שיכון ובינוי", Symbol: "SKBN.TA"},
	{Alias: "איילון", Symbol: "AYLN.TA"},
	{Alias: "אזורים", Symbol: "AZRM.TA"},
	{Alias: "ישראכרט", Symbol: "ISCD.TA"},
	{Alias: "ישרס", Symbol: "ISRS.TA"},
	{Alias: "סלקום", Symbol: "CEL.TA"},
	{Alias: "בינלאומי", Symbol: "BINT.TA"},
	{Alias: "אלקטרה", Symbol: "ELTR.TA"},
	{Alias: "אינטרקיור", Symbol: "INCR.TA"},
	{Alias: "דניה סיבוס", Symbol: "DNYA.TA"},
	{Alias: "רמי לוי", Symbol: "RMLI.TA"},
	{Alias: "אפקון החזקות", Symbol: "AFKN.TA"},
	{Alias: "פסגות קבוצה", Symbol: "PSGM.TA"},
	{Alias: "מיטב בית השקעות", Symbol: "MTDS.TA"},
	{Alias: "מנורה מב החזקות", Symbol: "MNRB.TA"},
	{Alias: "ברקת קפיטל", Symbol: "BRKT.TA"},
	{Alias: "פלאזה סנטרס", Symbol: "PLAZ.TA"},
	{Alias: "קנדה ישראל", Symbol: "CLIS.TA"},
	{Alias: "ישרוטל", Symbol: "ISHT.TA"},
	{Alias: "אלוני חץ", Symbol: "ALHE.TA"},
	{Alias: "תדיראן גרופ", Symbol: "TADR.TA"},
	{Alias: "מלם תים", Symbol: "MLTM.TA"},
	{Alias: "אלביט טכנ", Symbol: "ESLT.TA"},
	{Alias: "אלביט הדמיה", Symbol: "ELMD.TA"},
	{Alias: "אורביט", Symbol: "ORBT.TA"},
	{Alias: "אליביט", Symbol: "ESLT.TA"},
}
